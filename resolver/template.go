package resolver

import (
	"maps"
	"slices"
	"strings"

	"github.com/erraggy/restoas/internal/httputil"
	"github.com/erraggy/restoas/parser"
)

// ResolveURI substitutes the {name} placeholders of template that have a
// value in params. Values are percent-encoded; placeholders without a value
// are left as they are. Resolving an already resolved template with the same
// params returns it unchanged.
func ResolveURI(template string, params map[string]string) string {
	if len(params) == 0 {
		return template
	}
	start := strings.IndexByte(template, '{')
	if start < 0 {
		return template
	}

	var b strings.Builder
	b.Grow(len(template) * 2)
	pos := 0
	for start >= 0 {
		end := strings.IndexByte(template[start:], '}')
		if end < 0 {
			break
		}
		end += start
		b.WriteString(template[pos:start])
		name := template[start+1 : end]
		if value, ok := params[name]; ok {
			b.WriteString(httputil.EncodeUnsafe(value))
		} else {
			b.WriteString(template[start : end+1])
		}
		pos = end + 1
		next := strings.IndexByte(template[pos:], '{')
		if next < 0 {
			break
		}
		start = pos + next
	}
	b.WriteString(template[pos:])
	return b.String()
}

// PickBestScheme chooses https over http from the schemes a specification
// declares, and falls back to the scheme of the specification URI.
func PickBestScheme(specificationScheme string, schemes []string) string {
	if slices.Contains(schemes, "https") {
		return "https"
	}
	if slices.Contains(schemes, "http") {
		return "http"
	}
	return specificationScheme
}

// QueryTemplate renders the query string template of op. Query parameters
// synthesized from apiKey security schemes passed in the query come first,
// followed by the query parameters of the operation in declaration order.
// Each parameter renders as name={name}, or name={name?} when optional; a
// parameter with a literal value in params renders as name=<value>.
func QueryTemplate(doc parser.DocumentAccessor, item *parser.PathItem, op *parser.Operation, params map[string]string) string {
	var parts []string
	for _, p := range QueryParameters(doc, item, op) {
		if p.Name == "" {
			continue
		}
		if value, ok := params[p.Name]; ok {
			parts = append(parts, p.Name+"="+httputil.EncodeUnsafe(value))
			continue
		}
		if p.Required {
			parts = append(parts, p.Name+"={"+p.Name+"}")
		} else {
			parts = append(parts, p.Name+"={"+p.Name+"?}")
		}
	}
	return strings.Join(parts, "&")
}

// QueryParameters returns the query parameters of op: required string
// parameters for the query apiKey schemes its security requirements name,
// then the declared query parameters. Security requirements of the document
// apply when op declares none. Parameters declared on the path item are
// included unless op redeclares them.
func QueryParameters(doc parser.DocumentAccessor, item *parser.PathItem, op *parser.Operation) []*parser.Parameter {
	if op == nil {
		return nil
	}
	var out []*parser.Parameter
	seen := make(map[string]bool)

	security := op.Security
	if security == nil && doc != nil {
		security = doc.GetSecurity()
	}
	for _, req := range security {
		for _, name := range slices.Sorted(maps.Keys(req)) {
			scheme, ok := parser.LookupSecurityScheme(doc, name)
			if !ok || !scheme.IsQueryAPIKey() || scheme.Name == "" || seen[scheme.Name] {
				continue
			}
			seen[scheme.Name] = true
			out = append(out, &parser.Parameter{
				Name:        scheme.Name,
				In:          parser.ParamInQuery,
				Required:    true,
				Type:        "string",
				Description: scheme.Description,
			})
		}
	}

	for _, p := range effectiveParameters(item, op) {
		if p.In == parser.ParamInQuery {
			out = append(out, p)
		}
	}
	return out
}

// effectiveParameters merges the parameters of op with those of its path
// item. Operation parameters come first; a path item parameter is dropped
// when op declares one with the same name and location.
func effectiveParameters(item *parser.PathItem, op *parser.Operation) []*parser.Parameter {
	var out []*parser.Parameter
	declared := make(map[[2]string]bool)
	if op != nil {
		for _, p := range op.Parameters {
			if p == nil {
				continue
			}
			declared[[2]string{p.Name, p.In}] = true
			out = append(out, p)
		}
	}
	if item != nil {
		for _, p := range item.Parameters {
			if p == nil || declared[[2]string{p.Name, p.In}] {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// pathParameterValues keeps the literal values of declared path parameters.
func pathParameterValues(item *parser.PathItem, op *parser.Operation, params map[string]string) map[string]string {
	out := make(map[string]string)
	for _, p := range effectiveParameters(item, op) {
		if p.In != parser.ParamInPath {
			continue
		}
		if value, ok := params[p.Name]; ok {
			out[p.Name] = value
		}
	}
	return out
}
