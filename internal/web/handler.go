// Package web реализует веб-версию отчета по студентам
package web

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Ultrahd-dev/student-roster/internal/config"
	"github.com/Ultrahd-dev/student-roster/internal/database"
	"github.com/Ultrahd-dev/student-roster/internal/roster"
)

//go:embed templates/*.html
var templatesFS embed.FS

// AllGroupsLabel подпись при отсутствии фильтра
const AllGroupsLabel = "Все группы"

// Handler обрабатывает HTTP запросы страницы отчета
type Handler struct {
	store  *database.Store
	report config.ReportConfig
	now    func() time.Time
	tmpl   *template.Template
}

// NewHandler создает новый handler отчета. now задает часы для вычисления текущего года.
func NewHandler(store *database.Store, report config.ReportConfig, now func() time.Time) (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &Handler{
		store:  store,
		report: report,
		now:    now,
		tmpl:   tmpl,
	}, nil
}

// Routes возвращает маршруты веб-версии
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /healthz", h.Health)
	return RequestLogger(mux)
}

// pageData данные шаблона страницы
type pageData struct {
	Groups       []roster.Group
	HasSelection bool
	SelectedID   int64
	SelectedName string
	Students     []roster.Row
	Count        int
	Year         int
}

// Index отображает список студентов с фильтром по группе
// GET /?group_id=N
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	var filter roster.Filter
	if raw := strings.TrimSpace(r.URL.Query().Get("group_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "Неверный идентификатор группы: ожидается целое число", http.StatusBadRequest)
			return
		}
		filter = roster.ByID(id)
	}

	ctx := r.Context()
	year := h.report.Year(h.now())

	conn, err := h.store.Session(ctx)
	if err != nil {
		log.Printf("Ошибка подключения к базе данных: %v", err)
		http.Error(w, "Ошибка подключения к базе данных", http.StatusInternalServerError)
		return
	}
	defer conn.Close()

	svc := roster.NewService(roster.NewRepository(conn, h.store.Placeholder()))

	groups, err := svc.ListEligibleGroups(ctx, year)
	if err != nil {
		log.Printf("Ошибка получения групп: %v", err)
		http.Error(w, "Не удалось загрузить список групп", http.StatusInternalServerError)
		return
	}

	students, err := svc.FetchRoster(ctx, year, filter)
	if err != nil {
		log.Printf("Ошибка получения студентов: %v", err)
		http.Error(w, "Не удалось загрузить список студентов", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Groups:       groups,
		SelectedName: AllGroupsLabel,
		Students:     students,
		Count:        len(students),
		Year:         year,
	}
	if filter.GroupID != nil {
		data.HasSelection = true
		data.SelectedID = *filter.GroupID
		if g, ok := roster.FindGroup(groups, *filter.GroupID); ok {
			data.SelectedName = g.Number
		}
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		log.Printf("Ошибка рендеринга страницы: %v", err)
		http.Error(w, "Ошибка формирования страницы", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Ошибка отправки ответа: %v", err)
	}
}

// Health проверяет доступность хранилища
// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		http.Error(w, "База данных недоступна", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
