package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/adisonshadow/adb/internal/web/middleware"
	"github.com/adisonshadow/adb/internal/web/response"
	"github.com/adisonshadow/adb/pkg/adbenum"
	"github.com/adisonshadow/adb/pkg/catalog"
	"github.com/adisonshadow/adb/pkg/meta"
)

// Source is what the API serves
type Source struct {
	Registry *meta.Registry
	Enums    *adbenum.Cache
	Logger   *zap.Logger
}

type api struct {
	registry *meta.Registry
	enums    *adbenum.Cache
}

// EnumView is the JSON form of an enumeration
type EnumView struct {
	adbenum.Snapshot
	Items []adbenum.Item `json:"sortedItems"`
}

// EntitySummary is one line of the entity listing
type EntitySummary struct {
	ClassName string          `json:"className"`
	TableName string          `json:"tableName"`
	Info      meta.EntityInfo `json:"entityInfo"`
	Columns   int             `json:"columnCount"`
}

// NewHandler builds the chi router:
//
//	GET /healthz
//	GET /api/types
//	GET /api/entities
//	GET /api/entities/{code}
//	GET /api/enums
//	GET /api/enums/{id}
//	GET /api/enums/{id}/validate
//	GET /api/tools?format=openai|claude&category=
func NewHandler(src Source) http.Handler {
	logger := src.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &api{registry: src.Registry, enums: src.Enums}
	if a.registry == nil {
		a.registry = meta.Default()
	}
	if a.enums == nil {
		a.enums = adbenum.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID(), middleware.Logging(logger), middleware.Recovery(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/types", a.types)
		r.Get("/entities", a.listEntities)
		r.Get("/entities/{code}", a.showEntity)
		r.Get("/enums", a.listEnums)
		r.Get("/enums/{id}", a.showEnum)
		r.Get("/enums/{id}/validate", a.validateEnum)
		r.Get("/tools", a.tools)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not allowed on "+r.URL.Path)
	})

	return r
}

func (a *api) types(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("category") {
	case "":
		response.JSON(w, http.StatusOK, meta.TypeCatalog())
	case string(meta.CategoryExtension):
		response.JSON(w, http.StatusOK, meta.ExtensionTypes())
	case string(meta.CategoryPrimitive):
		response.JSON(w, http.StatusOK, meta.PrimitiveTypes())
	default:
		response.BadRequest(w, "category must be extension or primitive")
	}
}

func (a *api) listEntities(w http.ResponseWriter, r *http.Request) {
	entries := a.registry.Entities.All()
	if tag := r.URL.Query().Get("tag"); tag != "" {
		var owners []meta.Owner
		for _, e := range entries {
			owners = append(owners, e.Owner)
		}
		entries = a.registry.Entities.FindByTag(owners, tag)
	}

	out := make([]EntitySummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntitySummary{
			ClassName: meta.ClassName(e.Owner),
			TableName: meta.TableName(e.Owner),
			Info:      e.Info,
			Columns:   len(a.registry.Store.ListMembers(e.Owner)),
		})
	}
	response.JSON(w, http.StatusOK, out)
}

func (a *api) showEntity(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	owners := a.registry.Store.Owners(meta.KindEntityInfo)

	entry, ok := a.registry.Entities.FindByCode(owners, code)
	if !ok {
		response.NotFound(w, "entity "+code+" not found")
		return
	}
	details, _ := a.registry.Details(entry.Owner)
	response.JSON(w, http.StatusOK, details)
}

func (a *api) listEnums(w http.ResponseWriter, r *http.Request) {
	enums := a.enums.All()
	out := make([]adbenum.Snapshot, 0, len(enums))
	for _, e := range enums {
		out = append(out, e.Snapshot())
	}
	response.JSON(w, http.StatusOK, out)
}

func (a *api) lookupEnum(w http.ResponseWriter, r *http.Request) (*adbenum.Enum, bool) {
	ref := chi.URLParam(r, "id")
	if e, ok := a.enums.Lookup(ref); ok {
		return e, true
	}
	if e, ok := a.enums.LookupByCode(ref); ok {
		return e, true
	}
	response.NotFound(w, "enum "+ref+" not found")
	return nil, false
}

func (a *api) showEnum(w http.ResponseWriter, r *http.Request) {
	e, ok := a.lookupEnum(w, r)
	if !ok {
		return
	}
	response.JSON(w, http.StatusOK, EnumView{Snapshot: e.Snapshot(), Items: e.SortedItems()})
}

func (a *api) validateEnum(w http.ResponseWriter, r *http.Request) {
	e, ok := a.lookupEnum(w, r)
	if !ok {
		return
	}
	response.JSON(w, http.StatusOK, e.Validate())
}

func (a *api) tools(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	fns := catalog.OpenAIFunctions()
	if c := q.Get("category"); c != "" {
		category, ok := catalog.ParseCategory(c)
		if !ok {
			response.BadRequest(w, "unknown category "+c)
			return
		}
		fns = catalog.ByCategory(category)
	}

	switch q.Get("format") {
	case "", "openai":
		response.JSON(w, http.StatusOK, fns)
	case "claude":
		tools := make([]catalog.ClaudeTool, 0, len(fns))
		for _, fn := range fns {
			tools = append(tools, fn.ClaudeTool())
		}
		response.JSON(w, http.StatusOK, tools)
	default:
		response.BadRequest(w, "format must be openai or claude")
	}
}
