package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"formflow-server/app"
	"formflow-server/builder"
	"formflow-server/database"
	"formflow-server/editor"
	"formflow-server/export"
	"formflow-server/httpx"
	"formflow-server/log"
	"formflow-server/model"
	"formflow-server/renderer"
)

// openSession resolves the form id to an editing session, loading the
// form when no session is open yet. Writes the error response itself
// and returns ok=false on failure.
func openSession(app app.App, w http.ResponseWriter, r *http.Request) (b *builder.Builder, ok bool) {
	formId := chi.URLParam(r, "id")
	b, err := app.Sessions.Open(r.Context(), formId)
	switch {
	case errors.Is(err, database.ErrNotFound):
		httpx.LogNotFound(w, "get_form", formId)
		return nil, false
	case errors.Is(err, model.ErrCorruptForm):
		httpx.LogStatusMsg(w, http.StatusUnprocessableEntity, log.WarnLevel, "get_form.corrupt", "%s", err)
		return nil, false
	case err != nil:
		httpx.LogInternalError(w, "get_form", err)
		return nil, false
	}
	return b, true
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := app.Sessions.Create()

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, b.Form())
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.Store.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.list_forms", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

func GetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := openSession(app, w, r)
		if !ok {
			return
		}

		render.JSON(w, r, map[string]any{
			"form":     b.Form(),
			"selected": b.Selected(),
			"dirty":    b.Dirty(),
		})
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		update := builder.Update{}
		err := render.DecodeJSON(r.Body, &update)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		b, ok := openSession(app, w, r)
		if !ok {
			return
		}
		b.UpdateForm(update)

		render.JSON(w, r, b.Form())
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")
		app.Sessions.Close(formId)

		err := app.Store.Delete(r.Context(), formId)
		if errors.Is(err, database.ErrNotFound) {
			httpx.LogNotFound(w, "delete_form", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.delete_form", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func SaveForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := openSession(app, w, r)
		if !ok {
			return
		}

		// a failed save leaves the in-memory form authoritative; the
		// caller may simply retry
		err := b.Save(r.Context())
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusServiceUnavailable, log.ErrorLevel, "db.save_form", "save failed, retry")
			return
		}

		render.JSON(w, r, map[string]any{
			"savedAt": b.LastSaved(),
		})
	}
}

func PreviewForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := openSession(app, w, r)
		if !ok {
			return
		}

		form := b.Form()
		fields := make([]renderer.RenderedField, len(form.Questions))
		for i, q := range form.Questions {
			fields[i] = renderer.Render(q, renderer.BuilderPreview, nil)
		}

		render.JSON(w, r, map[string]any{
			"title":       form.Title,
			"description": form.Description,
			"theme":       form.Settings.Theme,
			"fields":      fields,
		})
	}
}

func ExportForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := openSession(app, w, r)
		if !ok {
			return
		}
		form := b.Form()

		w.Header().Set("content-type", "application/pdf")
		w.Header().Set("content-disposition", `attachment; filename="`+model.Slugify(form.Title)+`.pdf"`)
		if err := export.PDF(form, w); err != nil {
			log.Errorf("export_form: %s", err)
		}
	}
}

func AddQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Type string `json:"type"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		qt, err := model.ParseQuestionType(body.Type)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "add_question.type", "%s", err)
			return
		}

		b, ok := openSession(app, w, r)
		if !ok {
			return
		}
		id := b.AddQuestion(qt)

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": id,
		})
	}
}

func UpdateQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		update := editor.Update{}
		err := render.DecodeJSON(r.Body, &update)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		b, ok := openSession(app, w, r)
		if !ok {
			return
		}
		b.UpdateQuestion(chi.URLParam(r, "qid"), update)

		render.JSON(w, r, b.Form())
	}
}

func DeleteQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := openSession(app, w, r)
		if !ok {
			return
		}
		// absent id is a no-op: delete is idempotent
		b.DeleteQuestion(chi.URLParam(r, "qid"))

		w.WriteHeader(http.StatusNoContent)
	}
}

func DuplicateQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := openSession(app, w, r)
		if !ok {
			return
		}

		qid := chi.URLParam(r, "qid")
		id := b.DuplicateQuestion(qid)
		if id == "" {
			httpx.LogNotFound(w, "duplicate_question", qid)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": id,
		})
	}
}

func MoveQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			From int `json:"from"`
			To   int `json:"to"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		b, ok := openSession(app, w, r)
		if !ok {
			return
		}
		b.MoveQuestion(body.From, body.To)

		render.JSON(w, r, b.Form())
	}
}

// Option, grid row and grid column edits share the same request shapes;
// each resolves to the matching engine operation.

func AddOption(app app.App) http.HandlerFunc {
	return appendItem(app, (*builder.Builder).AddOption)
}

func RenameOption(app app.App) http.HandlerFunc {
	return renameItem(app, (*builder.Builder).RenameOption)
}

func RemoveOption(app app.App) http.HandlerFunc {
	return removeItem(app, (*builder.Builder).RemoveOption)
}

func AddGridRow(app app.App) http.HandlerFunc {
	return appendItem(app, (*builder.Builder).AddGridRow)
}

func RenameGridRow(app app.App) http.HandlerFunc {
	return renameItem(app, (*builder.Builder).RenameGridRow)
}

func RemoveGridRow(app app.App) http.HandlerFunc {
	return removeItem(app, (*builder.Builder).RemoveGridRow)
}

func AddGridColumn(app app.App) http.HandlerFunc {
	return appendItem(app, (*builder.Builder).AddGridColumn)
}

func RenameGridColumn(app app.App) http.HandlerFunc {
	return renameItem(app, (*builder.Builder).RenameGridColumn)
}

func RemoveGridColumn(app app.App) http.HandlerFunc {
	return removeItem(app, (*builder.Builder).RemoveGridColumn)
}

func appendItem(app app.App, op func(*builder.Builder, string, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		b, ok := openSession(app, w, r)
		if !ok {
			return
		}
		op(b, chi.URLParam(r, "qid"), body.Text)

		render.JSON(w, r, b.Form())
	}
}

func renameItem(app app.App, op func(*builder.Builder, string, string, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		b, ok := openSession(app, w, r)
		if !ok {
			return
		}
		op(b, chi.URLParam(r, "qid"), chi.URLParam(r, "oid"), body.Text)

		render.JSON(w, r, b.Form())
	}
}

func removeItem(app app.App, op func(*builder.Builder, string, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := openSession(app, w, r)
		if !ok {
			return
		}
		op(b, chi.URLParam(r, "qid"), chi.URLParam(r, "oid"))

		render.JSON(w, r, b.Form())
	}
}
