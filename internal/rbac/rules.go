package rbac

const (
	RoleRespondent  = "respondent"
	RoleFacilitator = "facilitator"
	RoleAdmin       = "admin"
)

const (
	PermQuestionnaireView = "questionnaire:view"
	PermAssessmentCreate  = "assessment:create"
	PermAssessmentSave    = "assessment:save"
	PermAssessmentReset   = "assessment:reset"
	PermAssessmentDelete  = "assessment:delete"
	PermAssessmentViewOwn = "assessment:view-own"
	PermAssessmentViewAll = "assessment:view-all"
	PermReportView        = "report:view"
	PermReportPreview     = "report:preview"
	PermReportExport      = "report:export"
	PermEventsView        = "events:view"
)

// Default policy. Respondents work on their own assessments only; the
// owner check lives in the handlers.
var RolePermissions = map[string][]string{
	RoleRespondent: {
		PermQuestionnaireView,
		PermAssessmentCreate,
		PermAssessmentSave,
		PermAssessmentReset,
		PermAssessmentDelete,
		PermAssessmentViewOwn,
		PermReportView,
		PermReportPreview,
		PermReportExport,
	},
	RoleFacilitator: {
		PermQuestionnaireView,
		"assessment:*",
		"report:*",
	},
	RoleAdmin: {"*"},
}
