package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"formflow-server/app"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))
	root.Mount("/uploads", serveUploads(app))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	// builder
	api.Route("/forms", func(r chi.Router) {
		r.Post("/", CreateForm(app))
		r.Get("/", ListForms(app))
		r.Get("/{id}", GetForm(app))
		r.Patch("/{id}", UpdateForm(app))
		r.Delete("/{id}", DeleteForm(app))
		r.Post("/{id}/save", SaveForm(app))
		r.Get("/{id}/preview", PreviewForm(app))
		r.Get("/{id}/export", ExportForm(app))

		r.Post("/{id}/questions", AddQuestion(app))
		r.Post("/{id}/questions/move", MoveQuestion(app))
		r.Patch("/{id}/questions/{qid}", UpdateQuestion(app))
		r.Delete("/{id}/questions/{qid}", DeleteQuestion(app))
		r.Post("/{id}/questions/{qid}/duplicate", DuplicateQuestion(app))

		r.Post("/{id}/questions/{qid}/options", AddOption(app))
		r.Patch("/{id}/questions/{qid}/options/{oid}", RenameOption(app))
		r.Delete("/{id}/questions/{qid}/options/{oid}", RemoveOption(app))

		r.Post("/{id}/questions/{qid}/rows", AddGridRow(app))
		r.Patch("/{id}/questions/{qid}/rows/{oid}", RenameGridRow(app))
		r.Delete("/{id}/questions/{qid}/rows/{oid}", RemoveGridRow(app))

		r.Post("/{id}/questions/{qid}/columns", AddGridColumn(app))
		r.Patch("/{id}/questions/{qid}/columns/{oid}", RenameGridColumn(app))
		r.Delete("/{id}/questions/{qid}/columns/{oid}", RemoveGridColumn(app))

		// respondent
		r.Get("/{id}/view", ViewForm(app))
		r.Post("/{id}/answers", CaptureAnswers(app))
	})

	api.Post("/uploads", Upload(app))

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}

func serveUploads(app app.App) http.Handler {
	return http.StripPrefix("/uploads", http.FileServer(http.Dir(app.UploadDir)))
}
