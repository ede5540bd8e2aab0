package adaptor

import (
	"html/template"
	"net/http"

	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// ListCardValidations handles GET /api/admin/card-validations?page=&per_page=
func (h *AdminHandler) ListCardValidations(w http.ResponseWriter, r *http.Request) {
	req := request.NewPaginatedRequest(r.URL.Query())

	result, err := h.service.ListCardValidations(r.Context(), req)
	if err != nil {
		h.log.Error("Failed to list card validations", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Card validations retrieved successfully", result)
}

// CardValidationsPage handles GET /admin/card-validations
func (h *AdminHandler) CardValidationsPage(w http.ResponseWriter, r *http.Request) {
	req := request.NewPaginatedRequest(r.URL.Query())

	result, err := h.service.ListCardValidations(r.Context(), req)
	if err != nil {
		h.log.Error("Failed to render card validations", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	page := cardValidationsView{
		Records:    result.Data,
		Pagination: result.Pagination,
	}
	if result.Pagination.Page > 1 {
		page.PrevPage = result.Pagination.Page - 1
	}
	if result.Pagination.Page < result.Pagination.TotalPages {
		page.NextPage = result.Pagination.Page + 1
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := cardValidationsPage.Execute(w, page); err != nil {
		h.log.Error("Failed to execute card validations template", zap.Error(err))
	}
}

type cardValidationsView struct {
	Records    []response.CardValidationResponse
	Pagination response.PaginationMeta
	PrevPage   int
	NextPage   int
}

var cardValidationsPage = template.Must(template.New("card-validations").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Card validations</title></head>
<body>
<h1>Card validations</h1>
<form method="post" action="/logout"><button type="submit">Sign out</button></form>
{{if .Records}}
<table>
  <thead>
    <tr><th>Date</th><th>Cardholder</th><th>Card</th><th>Expiry</th><th>Method</th><th>Token</th></tr>
  </thead>
  <tbody>
  {{range .Records}}
    <tr>
      <td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td>
      <td>{{.CardholderName}}</td>
      <td>{{.CardNumber}}</td>
      <td>{{.Expiry}}</td>
      <td>{{.PaymentMethod}}</td>
      <td>{{.CardToken}}</td>
    </tr>
  {{end}}
  </tbody>
</table>
{{else}}
<p>No card validations yet.</p>
{{end}}
<nav>
  {{if .PrevPage}}<a href="?page={{.PrevPage}}&per_page={{.Pagination.PerPage}}">Previous</a>{{end}}
  <span>Page {{.Pagination.Page}} of {{.Pagination.TotalPages}} ({{.Pagination.Total}} records)</span>
  {{if .NextPage}}<a href="?page={{.NextPage}}&per_page={{.Pagination.PerPage}}">Next</a>{{end}}
</nav>
</body>
</html>
`))
