package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/suhaib93102/CLM-Frontend/model"
	"github.com/suhaib93102/CLM-Frontend/pkg/logger"
	"github.com/suhaib93102/CLM-Frontend/service"
)

type ContractHandler struct {
	*Base
}

func NewContractHandler(b *Base) *ContractHandler {
	return &ContractHandler{Base: b}
}

type ContractsData struct {
	Status    string
	Query     string
	Statuses  []string
	Contracts []model.Contract
	Total     int
}

// NewContractForm is both the bound create form and its template data.
type NewContractForm struct {
	Title        string   `form:"title"`
	TemplateID   string   `form:"template_id"`
	Clauses      []string `form:"clauses"`
	Instructions string   `form:"instructions"`
}

type NewContractData struct {
	Form      NewContractForm
	Templates []model.ContractTemplate
	Clauses   []model.Clause
	Selected  map[string]bool
	Warnings  []string
}

type ContractEditData struct {
	Contract model.Contract
	Value    string
	Clauses  []model.Clause
	Versions []model.ContractVersion
	Editable bool
}

type ContractVersionsData struct {
	Contract model.Contract
	Versions []model.ContractVersion
}

// List shows contracts. Query: status, q.
func (h *ContractHandler) List(c *gin.Context) {
	status := c.Query("status")
	query := strings.TrimSpace(c.Query("q"))

	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if query != "" {
		params.Set("search", query)
	}

	api := h.client(c)
	resp := api.Contracts(c.Request.Context(), params)
	if failed(h.Base, c, resp, "Failed to load contracts") {
		return
	}

	contracts := FilterContracts(service.Items(resp), status, query)
	data := ContractsData{
		Status:    status,
		Query:     query,
		Statuses:  []string{model.StatusDraft, model.StatusPending, model.StatusApproved, model.StatusRejected},
		Contracts: contracts,
		Total:     resp.Value().Count,
	}
	h.render(c, http.StatusOK, "contracts.html", h.page(c, "Contracts", "contracts", data))
}

// FilterContracts applies status and title filters locally, for backends
// that ignore the query parameters.
func FilterContracts(contracts []model.Contract, status, q string) []model.Contract {
	q = strings.ToLower(q)
	var out []model.Contract
	for i := range contracts {
		ct := &contracts[i]
		if status != "" && ct.Status != status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(ct.DisplayTitle()), q) && !strings.Contains(strings.ToLower(ct.Description), q) {
			continue
		}
		out = append(out, *ct)
	}
	return out
}

// New shows the create form. Templates and clauses load in parallel.
func (h *ContractHandler) New(c *gin.Context) {
	form := NewContractForm{TemplateID: c.Query("template")}
	h.renderNew(c, http.StatusOK, form, "")
}

func (h *ContractHandler) renderNew(c *gin.Context, status int, form NewContractForm, errMsg string) {
	api := h.client(c)
	g, ctx := errgroup.WithContext(c.Request.Context())
	var (
		templates service.Response[service.List[model.ContractTemplate]]
		clauses   service.Response[service.List[model.Clause]]
	)
	g.Go(func() error {
		templates = api.Templates(ctx)
		return unauthorized(templates)
	})
	g.Go(func() error {
		clauses = api.Clauses(ctx, nil)
		return unauthorized(clauses)
	})
	if err := g.Wait(); errors.Is(err, errSessionExpired) {
		h.expired(c)
		return
	}

	data := NewContractData{
		Form:      form,
		Templates: service.Items(templates),
		Selected:  make(map[string]bool),
	}
	if !templates.Success {
		data.Warnings = append(data.Warnings, templates.ErrorOr("Failed to load templates"))
	}
	if !clauses.Success {
		data.Warnings = append(data.Warnings, clauses.ErrorOr("Failed to load clauses"))
	}
	data.Clauses = ClausesFor(service.Items(clauses), templateType(data.Templates, form.TemplateID))
	for _, id := range form.Clauses {
		data.Selected[id] = true
	}

	p := h.page(c, "New contract", "contracts", data)
	if errMsg != "" {
		p.Error = errMsg
	}
	h.render(c, status, "contract_new.html", p)
}

func templateType(templates []model.ContractTemplate, id string) string {
	for _, t := range templates {
		if string(t.ID) == id {
			return t.ContractType
		}
	}
	return ""
}

// ClausesFor narrows the clause library to a contract type. An empty type
// keeps every clause.
func ClausesFor(clauses []model.Clause, contractType string) []model.Clause {
	if contractType == "" {
		return clauses
	}
	var out []model.Clause
	for _, cl := range clauses {
		if cl.ContractType == contractType {
			out = append(out, cl)
		}
	}
	return out
}

// Create generates a contract from the chosen template.
func (h *ContractHandler) Create(c *gin.Context) {
	var form NewContractForm
	_ = c.ShouldBind(&form)
	form.Title = strings.TrimSpace(form.Title)

	switch {
	case form.Title == "":
		h.renderNew(c, http.StatusUnprocessableEntity, form, "Contract title is required")
		return
	case form.TemplateID == "":
		h.renderNew(c, http.StatusUnprocessableEntity, form, "Please select a template")
		return
	}

	api := h.client(c)
	resp := api.GenerateContract(c.Request.Context(), model.GenerateRequest{
		TemplateID:       form.TemplateID,
		Title:            form.Title,
		SelectedClauses:  form.Clauses,
		UserInstructions: strings.TrimSpace(form.Instructions),
	})
	if resp.Unauthorized() {
		h.expired(c)
		return
	}
	if !resp.Success {
		h.renderNew(c, http.StatusBadGateway, form, resp.ErrorOr("Failed to create contract"))
		return
	}

	id := string(resp.Data.Contract.ID)
	logger.Info(c.Request.Context(), "contract generated", "contract_id", id, "template_id", form.TemplateID)
	if id == "" {
		h.redirect(c, "/contracts", "Contract created")
		return
	}
	h.redirect(c, "/contracts/"+url.PathEscape(id), "Contract created")
}

// Edit shows the editor: the contract, its clause library and version history.
func (h *ContractHandler) Edit(c *gin.Context) {
	id := c.Param("id")
	api := h.client(c)

	g, ctx := errgroup.WithContext(c.Request.Context())
	var (
		contract service.Response[model.Contract]
		clauses  service.Response[service.List[model.Clause]]
		versions service.Response[service.List[model.ContractVersion]]
	)
	g.Go(func() error {
		contract = api.Contract(ctx, id)
		return unauthorized(contract)
	})
	g.Go(func() error {
		clauses = api.Clauses(ctx, nil)
		return unauthorized(clauses)
	})
	g.Go(func() error {
		versions = api.ContractVersions(ctx, id)
		return unauthorized(versions)
	})
	if err := g.Wait(); errors.Is(err, errSessionExpired) {
		h.expired(c)
		return
	}
	if failed(h.Base, c, contract, "Failed to load contract") {
		return
	}

	ct := *contract.Data
	data := ContractEditData{
		Contract: ct,
		Clauses:  service.Items(clauses),
		Versions: service.Items(versions),
		Editable: ct.Status == "" || ct.Status == model.StatusDraft || ct.Status == model.StatusRejected,
	}
	if ct.Value.Valid {
		data.Value = ct.Value.Decimal.StringFixed(2)
	}
	h.render(c, http.StatusOK, "contract_edit.html", h.page(c, ct.DisplayTitle(), "contracts", data))
}

// ContractForm is the editor's save form.
type ContractForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Content     string `form:"content"`
	Value       string `form:"value"`
}

// BuildUpdate validates the editor form. Value accepts "12,500.00" style input.
func BuildUpdate(form ContractForm) (model.ContractUpdate, string) {
	update := model.ContractUpdate{
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Content:     form.Content,
		Status:      model.StatusDraft,
	}
	if update.Title == "" {
		return update, "Contract title is required"
	}
	if raw := strings.TrimSpace(strings.NewReplacer(",", "", "$", "").Replace(form.Value)); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil || v.IsNegative() {
			return update, "Contract value must be a positive amount"
		}
		v = v.Round(2)
		update.Value = &v
	}
	return update, ""
}

// Save stores the editor content as a draft.
func (h *ContractHandler) Save(c *gin.Context) {
	id := c.Param("id")
	back := "/contracts/" + url.PathEscape(id)

	var form ContractForm
	_ = c.ShouldBind(&form)
	update, msg := BuildUpdate(form)
	if msg != "" {
		h.redirectError(c, back, msg)
		return
	}

	api := h.client(c)
	resp := api.UpdateContract(c.Request.Context(), id, update)
	if resp.Unauthorized() {
		h.expired(c)
		return
	}
	if !resp.Success {
		h.redirectError(c, back, "Failed to save contract: "+resp.Error)
		return
	}
	logger.Info(c.Request.Context(), "contract saved", "contract_id", id)
	h.redirect(c, back, "Draft saved")
}

// Submit opens an approval request for the contract and marks it pending.
func (h *ContractHandler) Submit(c *gin.Context) {
	id := c.Param("id")
	back := "/contracts/" + url.PathEscape(id)

	priority := c.DefaultPostForm("priority", model.PriorityNormal)
	switch priority {
	case model.PriorityLow, model.PriorityNormal, model.PriorityHigh:
	default:
		priority = model.PriorityNormal
	}

	api := h.client(c)
	resp := api.CreateApproval(c.Request.Context(), model.NewApproval{
		EntityType: "contract",
		EntityID:   id,
		Comment:    strings.TrimSpace(c.PostForm("comment")),
		Priority:   priority,
	})
	if resp.Unauthorized() {
		h.expired(c)
		return
	}
	if !resp.Success {
		h.redirectError(c, back, "Failed to submit for approval: "+resp.Error)
		return
	}

	if upd := api.UpdateContract(c.Request.Context(), id, model.ContractUpdate{Status: model.StatusPending}); !upd.Success {
		logger.Warn(c.Request.Context(), "approval created but status not updated", "contract_id", id, "error", upd.Error)
	}
	logger.Info(c.Request.Context(), "contract submitted for approval", "contract_id", id, "approval_id", string(resp.Data.ID))
	h.redirect(c, back, "Submitted for approval")
}

// Clone copies the contract and opens the copy.
func (h *ContractHandler) Clone(c *gin.Context) {
	id := c.Param("id")
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		title = "Copy of " + strings.TrimSpace(c.PostForm("source_title"))
		if title == "Copy of " {
			title = "Copy of " + model.UntitledContract
		}
	}

	api := h.client(c)
	resp := api.CloneContract(c.Request.Context(), id, title)
	if resp.Unauthorized() {
		h.expired(c)
		return
	}
	if !resp.Success {
		h.redirectError(c, "/contracts/"+url.PathEscape(id), "Failed to clone contract: "+resp.Error)
		return
	}
	if resp.Data.ID == "" {
		h.redirect(c, "/contracts", "Contract cloned")
		return
	}
	h.redirect(c, "/contracts/"+url.PathEscape(string(resp.Data.ID)), "Contract cloned")
}

// Delete removes the contract.
func (h *ContractHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	api := h.client(c)
	resp := api.DeleteContract(c.Request.Context(), id)
	if resp.Unauthorized() {
		h.expired(c)
		return
	}
	if !resp.Success {
		h.redirectError(c, "/contracts/"+url.PathEscape(id), "Failed to delete contract: "+resp.Error)
		return
	}
	logger.Info(c.Request.Context(), "contract deleted", "contract_id", id)
	h.redirect(c, "/contracts", "Contract deleted")
}

// Versions lists the saved versions of a contract.
func (h *ContractHandler) Versions(c *gin.Context) {
	id := c.Param("id")
	api := h.client(c)

	g, ctx := errgroup.WithContext(c.Request.Context())
	var (
		contract service.Response[model.Contract]
		versions service.Response[service.List[model.ContractVersion]]
	)
	g.Go(func() error {
		contract = api.Contract(ctx, id)
		return unauthorized(contract)
	})
	g.Go(func() error {
		versions = api.ContractVersions(ctx, id)
		return unauthorized(versions)
	})
	if err := g.Wait(); errors.Is(err, errSessionExpired) {
		h.expired(c)
		return
	}
	if failed(h.Base, c, contract, "Failed to load contract") {
		return
	}
	if failed(h.Base, c, versions, "Failed to load versions") {
		return
	}

	data := ContractVersionsData{Contract: *contract.Data, Versions: service.Items(versions)}
	h.render(c, http.StatusOK, "contract_versions.html", h.page(c, "Versions", "contracts", data))
}

// CreateVersion snapshots the contract with a change summary.
func (h *ContractHandler) CreateVersion(c *gin.Context) {
	id := c.Param("id")
	back := "/contracts/" + url.PathEscape(id) + "/versions"

	summary := strings.TrimSpace(c.PostForm("change_summary"))
	if summary == "" {
		h.redirectError(c, back, "Please describe the change")
		return
	}

	api := h.client(c)
	resp := api.CreateContractVersion(c.Request.Context(), id, summary, c.PostFormArray("clauses"))
	if resp.Unauthorized() {
		h.expired(c)
		return
	}
	if !resp.Success {
		h.redirectError(c, back, "Failed to save version: "+resp.Error)
		return
	}
	h.redirect(c, back, "Version saved")
}
