package catalog

// NamingConvention describes how one kind of name is formed
type NamingConvention map[string]string

// NamingConventions returns the naming conventions keyed by kind
func NamingConventions() map[string]NamingConvention {
	return map[string]NamingConvention{
		"entity": {
			"typeName":  "PascalCase (e.g., User, OrderItem)",
			"tableName": "snake_case (e.g., users, order_items)",
		},
		"column": {
			"fieldName": "camelCase (e.g., firstName, createdAt)",
			"fieldId":   "field_name_001 format",
		},
		"enum": {
			"enumName": "PascalCase (e.g., OrderStatus, UserRole)",
			"enumId":   "enum-name-001 format",
		},
		"code": {
			"format":    "namespace:category:item (e.g., user:admin:super)",
			"separator": ":",
		},
	}
}

// Rules lists the required fields and name patterns of definitions
type Rules struct {
	Required map[string][]string `json:"required"`
	Patterns map[string]string   `json:"patterns"`
	Go       map[string]string   `json:"go"`
}

// ValidationRules returns the rules generated definitions must satisfy
func ValidationRules() Rules {
	return Rules{
		Required: map[string][]string{
			"entityInfo": {"id", "code", "label"},
			"columnInfo": {"id", "label"},
			"enumInfo":   {"id", "code", "label"},
			"enumItem":   {"label"},
		},
		Patterns: map[string]string{
			"id":         "^[a-zA-Z0-9-]+$",
			"code":       "^[a-zA-Z0-9:]+$",
			"entityName": "^[A-Z][a-zA-Z0-9]*$",
			"tableName":  "^[a-z][a-z0-9_]*$",
			"columnName": "^[a-z][a-zA-Z0-9]*$",
		},
		Go: map[string]string{
			"ownerIdentity": "Entities are attached by type; use meta.EntityOf[T]() or a value with a Name method",
			"columnMembers": "Column members use the field name as written in the definition",
			"enumOwners":    "Plain enumerations implement Keys and Value; numeric keys are treated as reverse mappings",
		},
	}
}
