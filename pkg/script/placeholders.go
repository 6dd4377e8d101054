package script

import (
	"strings"

	"github.com/atechlabs/scriptflow/pkg/models"
)

// Placeholder token forms recognized in script content.
const (
	TokenLeadFirstName  = "{LeadFirstName}"
	TokenRepName        = "{RepName}"
	TokenBusinessName   = "{BusinessName}"
	TokenLeadMagnetName = "{lead_magnet_name}"
)

// repNameFallback is used when no operator profile is available.
const repNameFallback = "someone from A-Tech Technologies"

// leadNameFallback keeps greetings neutral when the lead's name is unknown.
const leadNameFallback = "there"

// Context carries the values substituted into script placeholders. All
// fields are optional; the fallback chains below decide what an absent field
// resolves to.
type Context struct {
	LeadFirstName  string
	LeadFullName   string
	RepFirstName   string
	RepFullName    string
	BusinessName   string
	LeadMagnetName string
}

// ContextFor builds a substitution context from a lead and an operator
// profile, either of which may be nil.
func ContextFor(lead *models.Lead, profile *models.Profile) Context {
	var ctx Context

	if lead != nil {
		ctx.LeadFirstName = lead.FirstName
		ctx.LeadFullName = lead.FullName
		ctx.BusinessName = lead.BusinessName
		ctx.LeadMagnetName = lead.LeadMagnetName
	}

	if profile != nil {
		ctx.RepFirstName = profile.FirstName
		ctx.RepFullName = profile.FullName
	}

	return ctx
}

// LeadName resolves the lead greeting: explicit first name, else the first
// word of the full name, else a neutral "there".
func (c Context) LeadName() string {
	if c.LeadFirstName != "" {
		return c.LeadFirstName
	}

	if c.LeadFullName != "" {
		return FirstName(c.LeadFullName)
	}

	return leadNameFallback
}

// RepName resolves the operator name: explicit first name, else full name,
// else a generic company phrase.
func (c Context) RepName() string {
	if c.RepFirstName != "" {
		return c.RepFirstName
	}

	if c.RepFullName != "" {
		return c.RepFullName
	}

	return repNameFallback
}

// ReplacePlaceholders substitutes the four token forms in content. Business
// and lead-magnet tokens are replaced only when the context provides a value;
// otherwise the literal token remains and callers must tolerate it.
// Substitution is literal find-and-replace across all occurrences.
func ReplacePlaceholders(content string, ctx Context) string {
	if content == "" {
		return content
	}

	result := strings.ReplaceAll(content, TokenLeadFirstName, ctx.LeadName())
	result = strings.ReplaceAll(result, TokenRepName, ctx.RepName())

	if ctx.BusinessName != "" {
		result = strings.ReplaceAll(result, TokenBusinessName, ctx.BusinessName)
	}

	if ctx.LeadMagnetName != "" {
		result = strings.ReplaceAll(result, TokenLeadMagnetName, ctx.LeadMagnetName)
	}

	return result
}

// FirstName extracts the first whitespace-delimited word of a full name.
func FirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}
