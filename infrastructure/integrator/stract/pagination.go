package stract

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-report-api/internal/domain"
	"github.com/vfg2006/ads-report-api/pkg/utils"
)

const (
	DefaultMaxPages = 50
	previewLimit    = 256
)

// listKeys são as chaves onde a API coloca a lista de itens, em ordem de prioridade
var listKeys = []string{"insights", "accounts", "fields", "platforms", "results", "data", "items"}

// PaginationPolicy define as heurísticas de compatibilidade com a API
type PaginationPolicy struct {
	// MaxPages limita quantas requisições uma travessia pode fazer
	MaxPages int
	// KeepUnlistedObject mantém como item único um objeto sem lista conhecida
	KeepUnlistedObject bool
}

func DefaultPaginationPolicy() PaginationPolicy {
	return PaginationPolicy{MaxPages: DefaultMaxPages, KeepUnlistedObject: true}
}

type ShapeKind int

const (
	ShapeEmpty ShapeKind = iota
	ShapeBareList
	ShapeKeyedList
	ShapeSingleObject
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBareList:
		return "bare_list"
	case ShapeKeyedList:
		return "keyed_list"
	case ShapeSingleObject:
		return "single_object"
	default:
		return "empty"
	}
}

// Shape é a classificação de uma resposta decodificada
type Shape struct {
	Kind   ShapeKind
	Key    string
	Items  []any
	Object *domain.Record
}

// Classify identifica o formato da resposta
func Classify(data any) Shape {
	switch v := data.(type) {
	case []any:
		return Shape{Kind: ShapeBareList, Items: v}
	case *domain.Record:
		for _, key := range listKeys {
			if items, ok := v.Value(key).([]any); ok {
				return Shape{Kind: ShapeKeyedList, Key: key, Items: items, Object: v}
			}
		}
		return Shape{Kind: ShapeSingleObject, Object: v}
	default:
		return Shape{Kind: ShapeEmpty}
	}
}

type ContinuationKind int

const (
	ContinueStop ContinuationKind = iota
	ContinueNextPage
	ContinueFollowURL
)

type Continuation struct {
	Kind ContinuationKind
	URL  string
}

// DecideContinuation aplica, nessa ordem, os estilos de paginação
// conhecidos: contador pagination.current/total, link next, flags
// has_next/next_page. O primeiro que se aplica decide.
func DecideContinuation(page *domain.Record) Continuation {
	if pagination, ok := page.Value("pagination").(*domain.Record); ok {
		current, okCurrent := asInt(pagination.Value("current"))
		total, okTotal := asInt(pagination.Value("total"))
		if okCurrent && okTotal && current < total {
			return Continuation{Kind: ContinueNextPage}
		}
		return Continuation{Kind: ContinueStop}
	}

	if next, ok := page.Value("next").(string); ok && next != "" {
		return Continuation{Kind: ContinueFollowURL, URL: next}
	}

	if hasNext, ok := page.Value("has_next").(bool); ok && hasNext {
		return Continuation{Kind: ContinueNextPage}
	}
	if truthy(page.Value("next_page")) {
		return Continuation{Kind: ContinueNextPage}
	}

	return Continuation{Kind: ContinueStop}
}

// FetchAllPages percorre as páginas de path e concatena os itens na ordem.
// Ao atingir o limite de páginas devolve o que já foi acumulado.
func (s *StractIntegrator) FetchAllPages(ctx context.Context, path string, params url.Values) ([]any, error) {
	out := make([]any, 0)
	page := 1
	nextURL := ""

	for fetches := 0; ; fetches++ {
		if fetches >= s.policy.MaxPages {
			logrus.WithFields(logrus.Fields{
				"path":      path,
				"max_pages": s.policy.MaxPages,
				"items":     len(out),
			}).Warn("stract: page cap reached, returning partial result")
			s.metrics.IncPageCapReached(path)
			return out, nil
		}

		var data any
		var err error
		if nextURL != "" {
			data, err = s.client.GetURL(ctx, nextURL)
			nextURL = ""
		} else {
			data, err = s.client.Get(ctx, path, withPage(params, page))
		}
		if err != nil {
			return nil, err
		}

		shape := Classify(data)
		switch shape.Kind {
		case ShapeBareList:
			return append(out, shape.Items...), nil

		case ShapeSingleObject:
			if shape.Object.Len() > 0 && s.policy.KeepUnlistedObject {
				out = append(out, shape.Object)
			}
			logrus.WithFields(logrus.Fields{
				"path": path,
				"body": utils.PreviewJSON(shape.Object, previewLimit),
			}).Debug("stract: response without a known list key")
			return out, nil

		case ShapeEmpty:
			logrus.WithFields(logrus.Fields{
				"path": path,
				"body": utils.PreviewJSON(data, previewLimit),
			}).Debug("stract: response without items")
			return out, nil
		}

		out = append(out, shape.Items...)

		next := DecideContinuation(shape.Object)
		switch next.Kind {
		case ContinueNextPage:
			page++
		case ContinueFollowURL:
			nextURL = next.URL
		default:
			return out, nil
		}
	}
}

// withPage copia os parâmetros acrescentando o contador de página
func withPage(params url.Values, page int) url.Values {
	p := make(url.Values, len(params)+1)
	for k, v := range params {
		p[k] = append([]string(nil), v...)
	}
	p.Set("page", strconv.Itoa(page))
	return p
}

func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case json.Number:
		i, err := strconv.ParseInt(x.String(), 10, 64)
		return i, err == nil
	case int:
		return int64(x), true
	case int64:
		return x, true
	default:
		return 0, false
	}
}

// truthy segue a noção de "valor preenchido" da API: nulo, falso, zero,
// texto vazio e coleções vazias são falsos
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	case float64:
		return x != 0
	case int:
		return x != 0
	case []any:
		return len(x) > 0
	case *domain.Record:
		return x.Len() > 0
	default:
		return true
	}
}
