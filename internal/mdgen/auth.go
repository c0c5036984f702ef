package mdgen

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

func (g *generator) writeAuthentication() {
	names := g.spec.SecuritySchemeNames()
	if len(names) == 0 {
		return
	}

	g.heading(1, "Authentication", g.uniqueID("authentication"))
	for _, name := range names {
		ref := g.doc.Components.SecuritySchemes[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		g.writeSecurityScheme(name, ref.Value)
	}
}

func (g *generator) writeSecurityScheme(name string, scheme *openapi3.SecurityScheme) {
	description := inline(g.markdown(scheme.Description))
	withDescription := func(s string) string {
		if description == "" {
			return s
		}
		return s + ". " + description
	}

	switch scheme.Type {
	case "apiKey":
		g.linef("* API Key (%s)", inline(name))
		g.linef("    - %s", withDescription("Parameter Name: **"+inline(scheme.Name)+"**, in: "+scheme.In))
		g.blank()

	case "http":
		entry := "* HTTP Authentication, scheme: " + scheme.Scheme
		if scheme.BearerFormat != "" {
			entry += " (" + scheme.BearerFormat + ")"
		}
		g.line(withDescription(entry))
		g.blank()

	case "oauth2":
		g.line(withDescription("* OAuth2 authentication ("+inline(name)+")"))
		if scheme.Flows == nil {
			g.blank()
			return
		}
		flows := []struct {
			name string
			flow *openapi3.OAuthFlow
		}{
			{"implicit", scheme.Flows.Implicit},
			{"password", scheme.Flows.Password},
			{"clientCredentials", scheme.Flows.ClientCredentials},
			{"authorizationCode", scheme.Flows.AuthorizationCode},
		}
		for _, f := range flows {
			if f.flow == nil {
				continue
			}
			g.linef("    - Flow: %s", g.titleWords(f.name))
			if f.flow.AuthorizationURL != "" {
				g.linef("    - Authorization URL = %s", link(f.flow.AuthorizationURL, f.flow.AuthorizationURL))
			}
			if f.flow.TokenURL != "" {
				g.linef("    - Token URL = %s", link(f.flow.TokenURL, f.flow.TokenURL))
			}
			if f.flow.RefreshURL != "" {
				g.linef("    - Refresh URL = %s", link(f.flow.RefreshURL, f.flow.RefreshURL))
			}
			g.blank()

			if len(f.flow.Scopes) > 0 {
				rows := make([][]string, 0, len(f.flow.Scopes))
				for _, scope := range sortedKeys(f.flow.Scopes) {
					rows = append(rows, []string{inline(scope), g.cell(f.flow.Scopes[scope])})
				}
				g.table([]string{"Scope", "Scope Description"}, rows)
			}
		}

	case "openIdConnect":
		g.line(withDescription("* OpenID Connect ("+inline(name)+")"))
		if scheme.OpenIdConnectUrl != "" {
			g.linef("    - Discovery URL = %s", link(scheme.OpenIdConnectUrl, scheme.OpenIdConnectUrl))
		}
		g.blank()

	default:
		g.line(withDescription("* "+g.titleWords(scheme.Type)+" ("+inline(name)+")"))
		g.blank()
	}
}

// writeOperationSecurity states which security schemes an operation needs.
// Alternatives are joined with "or", schemes required together with "and".
func (g *generator) writeOperationSecurity(view operationView) {
	var alternatives []string
	for _, req := range view.security {
		if len(req) == 0 {
			continue
		}
		var combined []string
		for _, name := range sortedKeys(req) {
			entry := inline(name)
			if scopes := req[name]; len(scopes) > 0 {
				entry += " (Scopes: " + inline(strings.Join(scopes, ", ")) + ")"
			}
			combined = append(combined, entry)
		}
		alternatives = append(alternatives, strings.Join(combined, " and "))
	}

	if len(alternatives) == 0 {
		g.paragraph("This operation does not require authentication")
		return
	}
	g.paragraph("**Authentication required:** " + strings.Join(alternatives, " or "))
}
