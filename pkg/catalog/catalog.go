// Package catalog describes the registry's authoring operations as
// function-calling definitions for language model tool use, along with the
// naming conventions and validation rules generated definitions must follow.
package catalog

import "sort"

// Version is the catalog revision reported to clients
const Version = "1.0.0"

// Category groups related functions
type Category string

const (
	CategoryEntity     Category = "entity"
	CategoryColumn     Category = "column"
	CategoryEnum       Category = "enum"
	CategoryValidation Category = "validation"
	CategoryQuery      Category = "query"
	CategoryUtility    Category = "utility"
)

// Categories lists every category in catalog order
func Categories() []Category {
	return []Category{
		CategoryEntity,
		CategoryColumn,
		CategoryEnum,
		CategoryValidation,
		CategoryQuery,
		CategoryUtility,
	}
}

// ParseCategory returns the category named s
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Schema is the JSON Schema subset used for function parameters
type Schema struct {
	Type                 string             `json:"type,omitempty"`
	Description          string             `json:"description,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	Required             []string           `json:"required,omitempty"`
	Enum                 []string           `json:"enum,omitempty"`
	Default              any                `json:"default,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
}

// Function is one callable operation. It marshals to the OpenAI function
// definition shape.
type Function struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters"`
}

// ClaudeTool is a Function in the Anthropic tool definition shape
type ClaudeTool struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	InputSchema *Schema `json:"input_schema"`
}

// All returns every function keyed by category
func All() map[Category][]Function {
	all := make(map[Category][]Function, len(definitions))
	for _, c := range Categories() {
		all[c] = ByCategory(c)
	}
	return all
}

// ByCategory returns the functions of one category in catalog order. An
// unknown category yields an empty slice.
func ByCategory(c Category) []Function {
	fns := definitions[c]
	out := make([]Function, len(fns))
	copy(out, fns)
	return out
}

// ByName finds a function across all categories
func ByName(name string) (Function, bool) {
	for _, c := range Categories() {
		for _, fn := range definitions[c] {
			if fn.Name == name {
				return fn, true
			}
		}
	}
	return Function{}, false
}

// Names returns every function name, sorted
func Names() []string {
	var names []string
	for _, c := range Categories() {
		for _, fn := range definitions[c] {
			names = append(names, fn.Name)
		}
	}
	sort.Strings(names)
	return names
}

// OpenAIFunctions flattens the catalog into OpenAI function definitions
func OpenAIFunctions() []Function {
	var fns []Function
	for _, c := range Categories() {
		fns = append(fns, definitions[c]...)
	}
	return fns
}

// ClaudeTools flattens the catalog into Anthropic tool definitions
func ClaudeTools() []ClaudeTool {
	var tools []ClaudeTool
	for _, fn := range OpenAIFunctions() {
		tools = append(tools, fn.ClaudeTool())
	}
	return tools
}

// ClaudeTool converts fn to the Anthropic tool shape
func (fn Function) ClaudeTool() ClaudeTool {
	return ClaudeTool{
		Name:        fn.Name,
		Description: fn.Description,
		InputSchema: fn.Parameters,
	}
}
