package reader

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/erraggy/restoas/internal/httputil"
	"github.com/erraggy/restoas/oaserrors"
	"github.com/erraggy/restoas/parser"
	"github.com/erraggy/restoas/typemap"
)

// Vendor extensions written by the reader.
const (
	ExtContextID = "x-camelContextId"
	ExtRouteID   = "x-routeId"
	ExtExample   = "x-example"
	ExtExamples  = "x-examples"
)

// BasicAuthKey is the security definition key used for every basic scheme,
// whatever key the route declares.
const BasicAuthKey = "BasicAuth"

// BasicAuthType is the type written for basic security schemes.
const BasicAuthType = "basicAuth"

// Reader turns REST route descriptions into OpenAPI 2.0 documents. A Reader
// holds no per-call state and may be used from several goroutines.
type Reader struct {
	classes ClassResolver
	coercer ValueCoercer
	logger  parser.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithClassResolver sets the resolver for class-qualified type names. By
// default every class name fails to resolve.
func WithClassResolver(r ClassResolver) Option {
	return func(rd *Reader) {
		rd.classes = r
	}
}

// WithValueCoercer sets the converter for array enum values. Defaults to
// DefaultCoercer.
func WithValueCoercer(c ValueCoercer) Option {
	return func(rd *Reader) {
		rd.coercer = c
	}
}

// WithLogger sets the structured logger.
func WithLogger(l parser.Logger) Option {
	return func(rd *Reader) {
		rd.logger = l
	}
}

// New returns a Reader.
func New(opts ...Option) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		opt(r)
	}
	if r.classes == nil {
		r.classes = NewStaticClassResolver()
	}
	if r.coercer == nil {
		r.coercer = DefaultCoercer
	}
	r.logger = parser.LoggerOrNop(r.logger)
	return r
}

// Read builds a document from rests. A routeFilter other than "" or "/"
// keeps only the rests whose Path equals it. The document is returned only
// when every rest was read; class resolution and enum coercion failures
// abort the read.
func Read(rests []*Rest, routeFilter string, cfg Config, opts ...Option) (*parser.OAS2Document, error) {
	return New(opts...).Read(rests, routeFilter, cfg)
}

// Read builds a document from rests. See the package-level Read.
func (r *Reader) Read(rests []*Rest, routeFilter string, cfg Config) (*parser.OAS2Document, error) {
	b := &build{
		reader:  r,
		doc:     parser.NewOAS2Document(),
		cfg:     cfg,
		usedIDs: make(map[string]bool),
	}
	b.types = typemap.New(b.doc)
	b.doc.SecurityDefinitions = make(map[string]*parser.SecurityScheme)

	for _, rest := range rests {
		if rest == nil {
			continue
		}
		if routeFilter != "" && routeFilter != "/" && rest.Path != routeFilter {
			continue
		}
		if err := b.rest(rest); err != nil {
			return nil, err
		}
	}

	if len(b.doc.SecurityDefinitions) == 0 {
		b.doc.SecurityDefinitions = nil
	}
	cfg.apply(b.doc)
	r.logger.Debug("read routes",
		"paths", b.doc.Paths.Len(),
		"definitions", b.doc.Definitions.Len(),
		"operations", b.verbCount)
	return b.doc, nil
}

// build is the state of one Read call.
type build struct {
	reader    *Reader
	doc       *parser.OAS2Document
	types     *typemap.Mapper
	cfg       Config
	usedIDs   map[string]bool
	verbCount int
}

func (b *build) rest(rest *Rest) error {
	verbs := slices.Clone(rest.Verbs)
	verbs = slices.DeleteFunc(verbs, func(v *Verb) bool { return v == nil })
	slices.SortStableFunc(verbs, compareVerbs)

	tag := rest.Tag
	if tag == "" {
		tag = strings.TrimPrefix(rest.Path, "/")
	}
	if tag != "" {
		b.doc.AddTag(tag, rest.Description)
	}

	for _, sd := range rest.SecurityDefinitions {
		if sd != nil {
			b.securityDefinition(sd)
		}
	}

	if err := b.discoverTypes(rest, verbs); err != nil {
		return err
	}

	for _, v := range verbs {
		if !documented(rest, v) {
			continue
		}
		if err := b.verb(rest, v, tag); err != nil {
			return err
		}
	}
	return nil
}

func (b *build) securityDefinition(sd *SecurityDefinition) {
	switch sd.Kind {
	case SecurityBasic:
		b.doc.SecurityDefinitions[BasicAuthKey] = &parser.SecurityScheme{
			Type:        BasicAuthType,
			Description: sd.Description,
		}
	case SecurityAPIKey:
		in := parser.ParamInQuery
		if sd.InHeader {
			in = parser.ParamInHeader
		}
		b.doc.SecurityDefinitions[sd.Key] = &parser.SecurityScheme{
			Type:        parser.SecurityTypeAPIKey,
			Description: sd.Description,
			Name:        sd.Name,
			In:          in,
		}
	case SecurityOAuth2:
		flow := sd.Flow
		if flow == "" {
			switch {
			case sd.AuthorizationURL != "" && sd.TokenURL != "":
				flow = parser.FlowAccessCode
			case sd.AuthorizationURL != "":
				flow = parser.FlowImplicit
			}
		}
		scheme := &parser.SecurityScheme{
			Type:             parser.SecurityTypeOAuth2,
			Description:      sd.Description,
			Flow:             flow,
			AuthorizationURL: sd.AuthorizationURL,
			TokenURL:         sd.TokenURL,
			Scopes:           make(map[string]string, len(sd.Scopes)),
		}
		for _, s := range sd.Scopes {
			scheme.Scopes[s.Key] = s.Value
		}
		b.doc.SecurityDefinitions[sd.Key] = scheme
	default:
		b.reader.logger.Warn("ignoring security definition of unknown kind", "kind", sd.Kind, "key", sd.Key)
	}
}

// discoverTypes registers the models of every class the documented verbs
// refer to, in first-encounter order.
func (b *build) discoverTypes(rest *Rest, verbs []*Verb) error {
	var names []string
	add := func(typeName string) {
		name, _ := typemap.StripArray(strings.TrimSpace(typeName))
		if name == "" || typemap.IsPrimitive(name) || slices.Contains(names, name) {
			return
		}
		names = append(names, name)
	}
	for _, v := range verbs {
		if !documented(rest, v) {
			continue
		}
		add(v.Type)
		add(v.OutType)
		for _, msg := range v.ResponseMsgs {
			if msg != nil {
				add(msg.ResponseModel)
			}
		}
	}

	for _, name := range names {
		models, err := b.reader.classes.ResolveClass(name)
		if err != nil {
			return &oaserrors.TypeResolutionError{TypeName: name, Cause: err}
		}
		for _, m := range models {
			if key, added := b.types.Register(m.ClassName, m.Schema); added {
				b.reader.logger.Debug("registered definition", "name", key, "class", m.ClassName)
			}
		}
	}
	return nil
}

func (b *build) verb(rest *Rest, v *Verb, tag string) error {
	b.verbCount++
	method := strings.ToLower(v.Method)
	path := joinPath(rest.Path, v.URI)

	if !slices.Contains(httputil.MethodOrder, method) {
		return &oaserrors.InvalidArgumentError{
			Argument: "method",
			Value:    v.Method,
			Message:  fmt.Sprintf("unsupported HTTP method on %s", path),
		}
	}
	op := &parser.Operation{Responses: parser.NewOrderedMap[*parser.Response]()}
	b.doc.PathItem(path).SetOperation(method, op)

	if tag != "" {
		op.Tags = []string{tag}
	}

	routeID := v.RouteID
	if routeID == "" {
		routeID = "route" + strconv.Itoa(b.verbCount)
	}
	opID := rest.ID
	if opID == "" {
		opID = routeID
	}
	op.OperationID = b.uniqueID(opID)

	if b.cfg.ContextID != "" {
		op.SetExtension(ExtContextID, b.cfg.ContextID)
	}
	op.SetExtension(ExtRouteID, routeID)

	consumes := v.Consumes
	if consumes == "" {
		consumes = rest.Consumes
	}
	op.Consumes = httputil.SplitList(consumes)
	produces := v.Produces
	if produces == "" {
		produces = rest.Produces
	}
	op.Produces = httputil.SplitList(produces)

	op.Summary = v.Description

	for _, sec := range v.Security {
		if sec == nil {
			continue
		}
		scopes := splitScopes(sec.Scopes)
		op.Security = append(op.Security, parser.SecurityRequirement{sec.Key: scopes})
	}

	for _, p := range v.Params {
		if p == nil {
			continue
		}
		param, err := b.parameter(v, p)
		if err != nil {
			return err
		}
		op.Parameters = append(op.Parameters, param)
	}

	if v.OutType != "" {
		op.Responses.Set("200", &parser.Response{
			Description: "Output type",
			Schema:      b.types.SchemaFor(v.OutType),
		})
	}
	b.responses(v, op)
	return nil
}

// uniqueID returns id, or id with the first free "_n" suffix when id is
// already taken.
func (b *build) uniqueID(id string) string {
	candidate := id
	for n := 2; b.usedIDs[candidate]; n++ {
		candidate = id + "_" + strconv.Itoa(n)
	}
	b.usedIDs[candidate] = true
	return candidate
}

func splitScopes(s string) []string {
	scopes := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if scopes == nil {
		return []string{}
	}
	return scopes
}

func (b *build) parameter(v *Verb, p *Param) (*parser.Parameter, error) {
	in := p.location()
	param := &parser.Parameter{
		Name:        p.Name,
		In:          string(in),
		Description: p.Description,
		Required:    p.required(),
	}

	if in == ParamBody {
		typeName := p.DataType
		if typeName == "" {
			typeName = v.Type
		}
		if typeName != "" {
			param.Schema = b.types.SchemaFor(typeName)
		}
		setFirstExample(param, p.Examples)
		return param, nil
	}

	dataType := p.DataType
	if dataType == "" {
		dataType = "string"
	}
	isArray := strings.EqualFold(dataType, "array")
	param.Type = dataType
	param.Format = p.DataFormat
	if isArray {
		items, err := b.items(p)
		if err != nil {
			return nil, err
		}
		param.Items = items
	}
	param.CollectionFormat = p.CollectionFormat
	if len(p.AllowableValues) > 0 && !isArray {
		param.Enum = toAny(p.AllowableValues)
	}
	if p.DefaultValue != "" {
		param.Default = p.DefaultValue
	}
	setFirstExample(param, p.Examples)
	return param, nil
}

// items describes the elements of an array parameter. Allowable values
// become the item enum, converted to the element type.
func (b *build) items(p *Param) (*parser.Items, error) {
	typ, format, ok := typemap.TypeFormat(p.ArrayType)
	if !ok {
		return nil, nil
	}
	items := &parser.Items{Type: typ, Format: format}
	if len(p.AllowableValues) == 0 {
		return items, nil
	}
	if typ == "string" {
		items.Enum = toAny(p.AllowableValues)
		return items, nil
	}
	for _, raw := range p.AllowableValues {
		val, err := b.reader.coercer.Coerce(strings.ToLower(p.ArrayType), raw)
		if err != nil {
			return nil, &oaserrors.EnumCoercionError{
				Parameter:   p.Name,
				ElementType: p.ArrayType,
				Value:       raw,
				Cause:       err,
			}
		}
		items.Enum = append(items.Enum, val)
	}
	return items, nil
}

// setFirstExample records only the first declared example: an empty key
// gives x-example, otherwise x-examples holds the single key/value pair.
func setFirstExample(param *parser.Parameter, examples []Property) {
	if len(examples) == 0 {
		return
	}
	first := examples[0]
	if first.Key == "" {
		param.SetExtension(ExtExample, first.Value)
		return
	}
	param.SetExtension(ExtExamples, map[string]any{first.Key: first.Value})
}

func (b *build) responses(v *Verb, op *parser.Operation) {
	for _, msg := range v.ResponseMsgs {
		if msg == nil {
			continue
		}
		code := msg.code()
		resp, ok := op.Responses.Get(code)
		if !ok || resp == nil {
			resp = &parser.Response{}
			op.Responses.Set(code, resp)
		}
		if msg.ResponseModel != "" {
			resp.Schema = b.types.SchemaFor(msg.ResponseModel)
		}
		if msg.Message != "" {
			resp.Description = msg.Message
		}
		for _, h := range msg.Headers {
			if h == nil {
				continue
			}
			if header := responseHeader(h); header != nil {
				if resp.Headers == nil {
					resp.Headers = make(map[string]*parser.Header)
				}
				resp.Headers[h.Name] = header
			}
		}
		if len(msg.Examples) > 0 {
			if resp.Examples == nil {
				resp.Examples = make(map[string]any, len(msg.Examples))
			}
			for _, ex := range msg.Examples {
				resp.Examples[ex.Key] = ex.Value
			}
		}
	}

	if op.Responses.Len() == 0 {
		op.Responses.Set("200", &parser.Response{})
	}
}

// responseHeader maps a declared header to an OAS 2.0 header. Headers of
// a type outside string, int, integer, long, float, double, boolean and
// array are dropped.
func responseHeader(h *ResponseHeader) *parser.Header {
	dataType := strings.ToLower(h.DataType)
	if dataType == "" {
		dataType = "string"
	}

	header := &parser.Header{Description: h.Description}
	switch dataType {
	case "array":
		header.Type = "array"
		if typ, format, ok := typemap.TypeFormat(h.ArrayType); ok {
			header.Items = &parser.Items{Type: typ, Format: format}
		} else {
			header.Items = &parser.Items{Type: "string"}
		}
	default:
		typ, format, ok := typemap.TypeFormat(dataType)
		if !ok {
			return nil
		}
		header.Type = typ
		header.Format = format
		if h.DataFormat != "" {
			header.Format = h.DataFormat
		}
		if len(h.AllowableValues) > 0 && dataType != "boolean" {
			header.Enum = toAny(h.AllowableValues)
		}
	}
	if h.Example != "" {
		header.SetExtension(ExtExample, h.Example)
	}
	return header
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Types lists the distinct class-qualified type names referenced by the
// documented verbs of rests, sorted. Route files use it to report models
// they fail to declare.
func Types(rests []*Rest) []string {
	set := make(map[string]struct{})
	for _, rest := range rests {
		if rest == nil {
			continue
		}
		for _, v := range rest.Verbs {
			if v == nil || !documented(rest, v) {
				continue
			}
			refs := []string{v.Type, v.OutType}
			for _, msg := range v.ResponseMsgs {
				if msg != nil {
					refs = append(refs, msg.ResponseModel)
				}
			}
			for _, ref := range refs {
				name, _ := typemap.StripArray(strings.TrimSpace(ref))
				if name != "" && !typemap.IsPrimitive(name) {
					set[name] = struct{}{}
				}
			}
		}
	}
	return slices.Sorted(maps.Keys(set))
}
