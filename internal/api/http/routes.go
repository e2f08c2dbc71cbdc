package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-diagnostic/internal/assessment"
	auth "github.com/mind-engage/mindengage-diagnostic/internal/auth/middleware"
	"github.com/mind-engage/mindengage-diagnostic/internal/rbac"
	"github.com/mind-engage/mindengage-diagnostic/internal/storage"
	syncx "github.com/mind-engage/mindengage-diagnostic/internal/sync"
)

type Deps struct {
	Auth    *auth.AuthService
	Service *assessment.Service
	Blobs   storage.BlobStore // optional: /exports downloads
	Events  *syncx.EventRepo  // optional: /events feed
}

// Mount registers the protected API (JWT → role in context → RBAC).
func Mount(r chi.Router, d Deps) {
	svc := d.Service
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))

		pr.With(rbac.Require(rbac.PermQuestionnaireView)).
			Get("/questionnaire", GetQuestionnaireHandler(svc))
		pr.With(rbac.Require(rbac.PermReportPreview)).
			Post("/reports/preview", PreviewReportHandler(svc))

		pr.Route("/assessments", func(ar chi.Router) {
			ar.With(rbac.Require(rbac.PermAssessmentCreate)).Post("/", CreateAssessmentHandler(svc))
			ar.With(rbac.RequireAny(rbac.PermAssessmentViewOwn, rbac.PermAssessmentViewAll)).
				Get("/", ListAssessmentsHandler(svc))

			ar.Route("/{id}", func(ir chi.Router) {
				ir.With(rbac.RequireAny(rbac.PermAssessmentViewOwn, rbac.PermAssessmentViewAll)).
					Get("/", GetAssessmentHandler(svc))
				ir.With(rbac.Require(rbac.PermAssessmentDelete)).Delete("/", DeleteAssessmentHandler(svc))
				ir.With(rbac.Require(rbac.PermAssessmentSave)).Put("/context", SaveContextHandler(svc))
				ir.With(rbac.Require(rbac.PermAssessmentSave)).Put("/maturity", SaveMaturityHandler(svc))
				ir.With(rbac.Require(rbac.PermAssessmentReset)).Delete("/responses", ResetResponsesHandler(svc))
				ir.With(rbac.RequireAny(rbac.PermAssessmentViewOwn, rbac.PermAssessmentViewAll)).
					Get("/progress", ProgressHandler(svc))
				ir.With(rbac.Require(rbac.PermReportView)).Get("/report", GetReportHandler(svc))
				ir.With(rbac.Require(rbac.PermReportExport)).Post("/exports", CreateExportHandler(svc))
				ir.With(rbac.Require(rbac.PermReportExport)).Get("/exports", ListExportsHandler(svc))
			})
		})

		if d.Blobs != nil {
			pr.With(rbac.Require(rbac.PermReportExport)).Route("/exports", func(er chi.Router) {
				MountExports(er, d.Blobs, svc)
			})
		}
		if d.Events != nil {
			pr.With(rbac.Require(rbac.PermEventsView)).Get("/events", ListEventsHandler(d.Events))
		}
	})
}
