package handler

import (
	"errors"
	"net/http"
	"slices"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/suhaib93102/CLM-Frontend/model"
	"github.com/suhaib93102/CLM-Frontend/pkg/logger"
	"github.com/suhaib93102/CLM-Frontend/service"
)

// Metadata field types offered by the indexing form.
var fieldTypes = []string{"text", "date", "currency", "dropdown", "number"}

// CatalogHandler serves the reference pages: templates, workflows and
// metadata indexing.
type CatalogHandler struct {
	*Base
}

func NewCatalogHandler(b *Base) *CatalogHandler {
	return &CatalogHandler{Base: b}
}

type TemplatesData struct {
	Templates []model.ContractTemplate
	Files     []model.FileTemplate
	Preview   *model.FileTemplateContent
	Warnings  []string
}

// Templates lists database and file templates. ?file= previews one file template.
func (h *CatalogHandler) Templates(c *gin.Context) {
	api := h.client(c)
	file := c.Query("file")

	g, ctx := errgroup.WithContext(c.Request.Context())
	var (
		templates service.Response[service.List[model.ContractTemplate]]
		files     service.Response[service.List[model.FileTemplate]]
		preview   service.Response[model.FileTemplateContent]
	)
	g.Go(func() error {
		templates = api.Templates(ctx)
		return unauthorized(templates)
	})
	g.Go(func() error {
		files = api.TemplateFiles(ctx)
		return nil
	})
	if file != "" {
		g.Go(func() error {
			preview = api.TemplateFileContent(ctx, file)
			return nil
		})
	}
	if err := g.Wait(); errors.Is(err, errSessionExpired) {
		h.expired(c)
		return
	}

	data := TemplatesData{
		Templates: service.Items(templates),
		Files:     service.Items(files),
	}
	if !templates.Success {
		data.Warnings = append(data.Warnings, templates.ErrorOr("Failed to load templates"))
	}
	if !files.Success {
		data.Warnings = append(data.Warnings, files.ErrorOr("Failed to load template files"))
	}
	if file != "" {
		if preview.Success {
			data.Preview = preview.Data
		} else {
			data.Warnings = append(data.Warnings, preview.ErrorOr("Failed to load template"))
		}
	}
	h.render(c, http.StatusOK, "templates.html", h.page(c, "Templates", "templates", data))
}

type WorkflowsData struct {
	Workflows []model.Workflow
	Selected  *model.Workflow
	Instances []model.WorkflowInstance
}

// Workflows lists workflows. ?id= also shows that workflow's running instances.
func (h *CatalogHandler) Workflows(c *gin.Context) {
	api := h.client(c)
	resp := api.Workflows(c.Request.Context())
	if failed(h.Base, c, resp, "Failed to load workflows") {
		return
	}

	data := WorkflowsData{Workflows: service.Items(resp)}
	if id := c.Query("id"); id != "" {
		for i := range data.Workflows {
			if string(data.Workflows[i].ID) == id {
				data.Selected = &data.Workflows[i]
				break
			}
		}
		if data.Selected != nil {
			instances := api.WorkflowInstances(c.Request.Context(), id)
			if instances.Unauthorized() {
				h.expired(c)
				return
			}
			data.Instances = service.Items(instances)
		}
	}
	h.render(c, http.StatusOK, "workflows.html", h.page(c, "Workflows", "workflows", data))
}

type IndexingData struct {
	Tab        string
	Entity     string
	Query      string
	Fields     []model.MetadataField
	Total      int
	Mandatory  int
	AvgUsage   int
	FieldTypes []string
}

// Indexing shows metadata fields. Query: tab=all|recent|archived,
// entity=contract|template|workflow, q=name.
func (h *CatalogHandler) Indexing(c *gin.Context) {
	api := h.client(c)
	resp := api.MetadataFields(c.Request.Context())
	if failed(h.Base, c, resp, "Failed to load metadata fields") {
		return
	}

	tab := c.DefaultQuery("tab", "all")
	entity := c.Query("entity")
	query := strings.TrimSpace(c.Query("q"))

	all := service.Items(resp)
	data := IndexingData{
		Tab:        tab,
		Entity:     entity,
		Query:      query,
		Fields:     FilterFields(all, tab, entity, query),
		FieldTypes: fieldTypes,
	}
	data.Total, data.Mandatory, data.AvgUsage = FieldStats(all)

	h.render(c, http.StatusOK, "indexing.html", h.page(c, "Indexing", "indexing", data))
}

// FilterFields applies the indexing tabs and search. "recent" is the ten
// newest non-archived fields.
func FilterFields(fields []model.MetadataField, tab, entity, q string) []model.MetadataField {
	q = strings.ToLower(q)
	var out []model.MetadataField
	for _, f := range fields {
		if (tab == "archived") != f.Archived {
			continue
		}
		if entity != "" && f.EntityType != "" && f.EntityType != entity {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(f.Name), q) {
			continue
		}
		out = append(out, f)
	}
	if tab == "recent" {
		sort.SliceStable(out, func(i, j int) bool {
			return model.ParseTime(out[i].CreatedAt).After(model.ParseTime(out[j].CreatedAt))
		})
		if len(out) > 10 {
			out = out[:10]
		}
	}
	return out
}

// FieldStats returns the active field count, how many are mandatory and the
// mean usage percentage.
func FieldStats(fields []model.MetadataField) (total, mandatory, avgUsage int) {
	sum := 0
	for _, f := range fields {
		if f.Archived {
			continue
		}
		total++
		sum += f.Usage
		if f.IsMandatory {
			mandatory++
		}
	}
	if total > 0 {
		avgUsage = sum / total
	}
	return total, mandatory, avgUsage
}

// FieldForm is the new metadata field form.
type FieldForm struct {
	Name        string `form:"name"`
	FieldType   string `form:"field_type"`
	EntityType  string `form:"entity_type"`
	IsMandatory bool   `form:"is_mandatory"`
}

// CreateField adds a metadata field.
func (h *CatalogHandler) CreateField(c *gin.Context) {
	var form FieldForm
	_ = c.ShouldBind(&form)
	form.Name = strings.TrimSpace(form.Name)
	if form.Name == "" {
		h.redirectError(c, "/indexing", "Field name is required")
		return
	}
	if !slices.Contains(fieldTypes, form.FieldType) {
		form.FieldType = "text"
	}

	api := h.client(c)
	resp := api.CreateMetadataField(c.Request.Context(), model.MetadataField{
		Name:        form.Name,
		FieldType:   form.FieldType,
		EntityType:  form.EntityType,
		Source:      "custom",
		IsMandatory: form.IsMandatory,
	})
	if resp.Unauthorized() {
		h.expired(c)
		return
	}
	if !resp.Success {
		h.redirectError(c, "/indexing", "Failed to create field: "+resp.Error)
		return
	}
	logger.Info(c.Request.Context(), "metadata field created", "name", form.Name, "type", form.FieldType)
	h.redirect(c, "/indexing", "Field created")
}
