package api

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	clienterrors "github.com/netscout/shodan/internal/errors"
	"github.com/netscout/shodan/internal/types"
)

// BodyMode selects how a descriptor's request body is encoded.
type BodyMode int

const (
	BodyNone BodyMode = iota
	BodyForm          // application/x-www-form-urlencoded
	BodyJSON          // application/json
)

// String returns the mode name used in error messages.
func (m BodyMode) String() string {
	switch m {
	case BodyNone:
		return "none"
	case BodyForm:
		return "form"
	case BodyJSON:
		return "json"
	default:
		return "BodyMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Param declares one accepted query parameter.
type Param struct {
	Name     string
	Required bool
}

// Descriptor is the static description of one API operation.
// Path placeholders use the {name} form and are substituted per call.
type Descriptor struct {
	Name   string // metric and log label, e.g. "host_search"
	Method string
	Path   string
	Query  []Param
	Body   BodyMode
	Stream bool // served by the streaming host without a timeout
}

// Call carries the caller-supplied values for one invocation of a descriptor.
type Call struct {
	Path  map[string]string
	Query url.Values
	Form  url.Values
	JSON  any
}

// Requester executes descriptors. The public client implements it; tests
// substitute a recorder.
type Requester interface {
	Do(ctx context.Context, d Descriptor, call Call) (*types.Response, error)
	Open(ctx context.Context, d Descriptor, call Call) (*types.Stream, error)
}

// PathParams returns the placeholder names in template order.
func (d Descriptor) PathParams() []string {
	var names []string
	rest := d.Path
	for {
		i := strings.IndexByte(rest, '{')
		if i < 0 {
			return names
		}
		j := strings.IndexByte(rest[i:], '}')
		if j < 0 {
			return names
		}
		names = append(names, rest[i+1:i+j])
		rest = rest[i+j+1:]
	}
}

// Validate checks a call against the descriptor. Every failure is a
// configuration error: nothing has been sent yet.
func (d Descriptor) Validate(call Call) error {
	if err := d.validatePath(call.Path); err != nil {
		return err
	}
	if err := d.validateQuery(call.Query); err != nil {
		return err
	}
	return d.validateBody(call)
}

func (d Descriptor) validatePath(values map[string]string) error {
	declared := d.PathParams()
	for _, name := range declared {
		v, ok := values[name]
		if !ok {
			return d.invalid("missing path parameter %q", name)
		}
		if err := types.ValidatePathParam(name, v); err != nil {
			return d.invalid("%v", err)
		}
	}
	if len(values) > len(declared) {
		for name := range values {
			if !contains(declared, name) {
				return d.invalid("unexpected path parameter %q", name)
			}
		}
	}
	return nil
}

func (d Descriptor) validateQuery(q url.Values) error {
	for name, vs := range q {
		if !d.acceptsQuery(name) {
			return d.invalid("unexpected query parameter %q", name)
		}
		for _, v := range vs {
			if err := types.ValidateQueryValue(name, v); err != nil {
				return d.invalid("%v", err)
			}
		}
	}
	for _, p := range d.Query {
		if p.Required && q.Get(p.Name) == "" {
			return d.invalid("query parameter %q is required", p.Name)
		}
	}
	return nil
}

func (d Descriptor) validateBody(call Call) error {
	hasForm := len(call.Form) > 0
	hasJSON := call.JSON != nil
	switch d.Body {
	case BodyNone:
		if hasForm || hasJSON {
			return d.invalid("endpoint takes no request body")
		}
	case BodyForm:
		if hasJSON {
			return d.invalid("endpoint takes a form body, got JSON")
		}
		if !hasForm {
			return d.invalid("form body is empty")
		}
		for name, vs := range call.Form {
			if name == "" {
				return d.invalid("form field with empty name")
			}
			for _, v := range vs {
				if err := types.ValidateQueryValue(name, v); err != nil {
					return d.invalid("%v", err)
				}
			}
		}
	case BodyJSON:
		if hasForm {
			return d.invalid("endpoint takes a JSON body, got form")
		}
		if !hasJSON {
			return d.invalid("JSON body is missing")
		}
	default:
		return d.invalid("unknown body mode %s", d.Body)
	}
	return nil
}

// BuildPath substitutes every placeholder with its percent-encoded value.
// Call Validate first.
func (d Descriptor) BuildPath(values map[string]string) string {
	var b strings.Builder
	rest := d.Path
	for {
		i := strings.IndexByte(rest, '{')
		j := strings.IndexByte(rest, '}')
		if i < 0 || j < i {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:i])
		b.WriteString(url.PathEscape(values[rest[i+1:j]]))
		rest = rest[j+1:]
	}
}

// BuildQuery returns the declared parameters with empty values dropped.
// The API key is added by the executor.
func (d Descriptor) BuildQuery(q url.Values) url.Values {
	out := url.Values{}
	for _, p := range d.Query {
		for _, v := range q[p.Name] {
			if v != "" {
				out.Add(p.Name, v)
			}
		}
	}
	return out
}

func (d Descriptor) acceptsQuery(name string) bool {
	for _, p := range d.Query {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (d Descriptor) invalid(format string, args ...any) error {
	return clienterrors.NewConfigError(d.Name,
		fmt.Errorf("%w: %s", clienterrors.ErrInvalidParam, fmt.Sprintf(format, args...)))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// All returns every descriptor known to the client, sorted by name.
func All() []Descriptor {
	all := []Descriptor{
		hostDescriptor, hostCountDescriptor, hostSearchDescriptor,
		searchFacetsDescriptor, searchFiltersDescriptor, searchTokensDescriptor,
		portsDescriptor, protocolsDescriptor, scanCreateDescriptor, scansDescriptor, scanDescriptor,
		alertCreateDescriptor, alertDescriptor, alertDeleteDescriptor, alertEditDescriptor,
		alertsDescriptor, alertTriggersDescriptor, alertTriggerAddDescriptor, alertTriggerDeleteDescriptor,
		alertIgnoreAddDescriptor, alertIgnoreDeleteDescriptor, alertNotifierAddDescriptor, alertNotifierDeleteDescriptor,
		notifiersDescriptor, notifierProvidersDescriptor, notifierCreateDescriptor,
		notifierDeleteDescriptor, notifierDescriptor, notifierEditDescriptor,
		queriesDescriptor, querySearchDescriptor, queryTagsDescriptor,
		accountProfileDescriptor,
		dnsDomainDescriptor, dnsResolveDescriptor, dnsReverseDescriptor,
		httpHeadersDescriptor, myIPDescriptor, apiInfoDescriptor,
		streamAlertsDescriptor, streamAlertDescriptor,
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// Lookup returns the descriptor with the given name.
func Lookup(name string) (Descriptor, bool) {
	for _, d := range All() {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// query helpers shared by the endpoint files

func setString(q url.Values, name, v string) {
	if v != "" {
		q.Set(name, v)
	}
}

func setBool(q url.Values, name string, v bool) {
	if v {
		q.Set(name, "true")
	}
}

func setInt(q url.Values, name string, v int) {
	if v > 0 {
		q.Set(name, strconv.Itoa(v))
	}
}

func pathValues(kv ...string) map[string]string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}
