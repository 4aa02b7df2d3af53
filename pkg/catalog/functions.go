package catalog

func object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Properties: props, Required: required}
}

func str(description string) *Schema {
	return &Schema{Type: "string", Description: description}
}

func number(description string) *Schema {
	return &Schema{Type: "number", Description: description}
}

func boolean(description string, def ...bool) *Schema {
	s := &Schema{Type: "boolean", Description: description}
	if len(def) > 0 {
		s.Default = def[0]
	}
	return s
}

func array(items *Schema, description string) *Schema {
	return &Schema{Type: "array", Items: items, Description: description}
}

func oneOf(description string, values ...string) *Schema {
	return &Schema{Type: "string", Description: description, Enum: values}
}

func entityInfoSchema() *Schema {
	return object(map[string]*Schema{
		"id":          str("Unique entity identifier, e.g. entity-user-001"),
		"code":        str("Colon separated unique code, e.g. user:admin:super"),
		"label":       str("Display name of the entity"),
		"description": str("Entity description"),
		"tags":        array(str(""), "Tags used to group entities"),
	}, "id", "code", "label")
}

func columnInfoSchema() *Schema {
	return object(map[string]*Schema{
		"id":    str("Unique column identifier, e.g. field_username_001"),
		"label": str("Display name of the column"),
	}, "id", "label")
}

func enumItemSchema() *Schema {
	return object(map[string]*Schema{
		"label":       str("Display name of the item"),
		"icon":        str("Icon name"),
		"color":       str("Display color"),
		"description": str("Item description"),
		"sort":        number("Sort weight, lower first"),
		"disabled":    boolean("Whether the item is hidden from selection"),
		"metadata":    {Type: "object", Description: "Free-form item metadata"},
	})
}

var definitions = map[Category][]Function{
	CategoryEntity: {
		{
			Name:        "create_adb_entity",
			Description: "Create an entity definition with complete EntityInfo metadata",
			Parameters: object(map[string]*Schema{
				"entityName": str("Entity type name in PascalCase"),
				"tableName":  str("Table name in snake_case"),
				"entityInfo": entityInfoSchema(),
			}, "entityName", "tableName", "entityInfo"),
		},
		{
			Name:        "create_base_entity",
			Description: "Create an entity with the base columns id, createdAt and updatedAt",
			Parameters: object(map[string]*Schema{
				"entityName":        str(""),
				"tableName":         str(""),
				"entityInfo":        entityInfoSchema(),
				"includeTimestamps": boolean("Whether to add timestamp columns", true),
			}, "entityName", "tableName", "entityInfo"),
		},
		{
			Name:        "add_entity_relation",
			Description: "Add a relation between two entities",
			Parameters: object(map[string]*Schema{
				"relationType": oneOf("Relation kind", "OneToOne", "OneToMany", "ManyToOne", "ManyToMany"),
				"targetEntity": str("Name of the related entity"),
				"propertyName": str("Field holding the relation"),
				"joinColumn":   str("Foreign key column name, optional"),
				"columnInfo":   columnInfoSchema(),
			}, "relationType", "targetEntity", "propertyName", "columnInfo"),
		},
	},
	CategoryColumn: {
		{
			Name:        "add_entity_column",
			Description: "Add a column to an entity with its storage definition and ColumnInfo metadata",
			Parameters: object(map[string]*Schema{
				"columnName": str("Column field name in camelCase"),
				"columnType": oneOf("Field type", "string", "number", "boolean", "time", "array"),
				"storageConfig": object(map[string]*Schema{
					"type":     str("Storage column type, e.g. varchar, int, json, timestamp"),
					"length":   number("Maximum string length"),
					"nullable": boolean("Whether NULL is allowed"),
					"unique":   boolean("Whether the column has a unique constraint"),
					"default":  str("Default value"),
				}),
				"columnInfo": object(map[string]*Schema{
					"id":         str("Unique column identifier, e.g. field_username_001"),
					"label":      str("Display name of the column"),
					"extendType": oneOf("Extension type tag", "adb-media", "adb-enum", "adb-auto-increment-id", "adb-guid-id", "adb-snowflake-id"),
				}, "id", "label"),
			}, "columnName", "columnType", "columnInfo"),
		},
		{
			Name:        "add_media_column",
			Description: "Add a media column",
			Parameters: object(map[string]*Schema{
				"columnName": str("Column field name"),
				"mediaConfig": object(map[string]*Schema{
					"mediaType":   oneOf("Media kind", "image", "video", "audio", "document", "file"),
					"formats":     array(str(""), "Accepted file formats"),
					"maxSize":     number("Maximum file size in MB"),
					"isMultiple":  boolean("Whether several files are allowed"),
					"storagePath": str("Storage path"),
				}, "mediaType", "formats"),
				"columnInfo": columnInfoSchema(),
			}, "columnName", "mediaConfig", "columnInfo"),
		},
		{
			Name:        "add_enum_column",
			Description: "Add an enumeration column",
			Parameters: object(map[string]*Schema{
				"columnName":    str("Column field name"),
				"enumReference": str("Name of the referenced enumeration"),
				"enumConfig": object(map[string]*Schema{
					"isMultiple": boolean("Whether several values may be selected", false),
					"default":    str("Default value"),
				}),
				"columnInfo": columnInfoSchema(),
			}, "columnName", "enumReference", "columnInfo"),
		},
		{
			Name:        "add_multiple_columns",
			Description: "Add several columns at once",
			Parameters: object(map[string]*Schema{
				"columns": array(object(map[string]*Schema{
					"columnName":    str(""),
					"columnType":    str(""),
					"storageConfig": {Type: "object"},
					"columnInfo":    columnInfoSchema(),
				}, "columnName", "columnType", "columnInfo"), ""),
			}, "columns"),
		},
	},
	CategoryEnum: {
		{
			Name:        "create_adb_enum",
			Description: "Create an enhanced enumeration",
			Parameters: object(map[string]*Schema{
				"enumName": str("Enumeration name in PascalCase"),
				"enumInfo": object(map[string]*Schema{
					"id":          str(""),
					"code":        str(""),
					"label":       str(""),
					"description": str(""),
				}, "id", "code", "label"),
				"values": {
					Type:                 "object",
					Description:          "Key to value mapping",
					AdditionalProperties: str(""),
				},
				"items": {
					Type:                 "object",
					Description:          "Item metadata keyed by enumeration key",
					AdditionalProperties: withRequired(enumItemSchema(), "label"),
				},
			}, "enumName", "enumInfo", "values", "items"),
		},
		{
			Name:        "update_enum_item",
			Description: "Update the metadata of one enumeration item",
			Parameters: object(map[string]*Schema{
				"enumName":   str(""),
				"itemKey":    str(""),
				"itemConfig": enumItemSchema(),
			}, "enumName", "itemKey", "itemConfig"),
		},
		{
			Name:        "sync_enum_to_database",
			Description: "Persist enumeration metadata to the __enums__ table",
			Parameters: object(map[string]*Schema{
				"enumName": str(""),
				"syncOptions": object(map[string]*Schema{
					"overwrite":          boolean("Whether to overwrite an existing record", false),
					"validateBeforeSync": boolean("Whether to validate before syncing", true),
				}),
			}, "enumName"),
		},
	},
	CategoryValidation: {
		{
			Name:        "validate_entity_structure",
			Description: "Check an entity definition for completeness and naming",
			Parameters: object(map[string]*Schema{
				"entityName": str(""),
				"validationRules": object(map[string]*Schema{
					"requireEntityInfo":     boolean("", true),
					"requireColumnInfo":     boolean("", true),
					"checkNamingConvention": boolean("", true),
					"checkFieldTypes":       boolean("", true),
				}),
			}, "entityName"),
		},
		{
			Name:        "validate_enum_configuration",
			Description: "Check an enumeration for completeness and consistency",
			Parameters: object(map[string]*Schema{
				"enumName": str(""),
				"validationOptions": object(map[string]*Schema{
					"checkRequiredFields": boolean("", true),
					"validateItemConfig":  boolean("", true),
					"checkSortOrder":      boolean("", false),
				}),
			}, "enumName"),
		},
		{
			Name:        "check_code_quality",
			Description: "Check generated definitions for quality and conventions",
			Parameters: object(map[string]*Schema{
				"checkItems": array(oneOf("",
					"syntax",
					"metadata_usage",
					"naming_convention",
					"type_safety",
					"metadata_completeness",
				), ""),
			}),
		},
	},
	CategoryQuery: {
		{
			Name:        "get_entity_metadata",
			Description: "Get the full metadata of an entity",
			Parameters: object(map[string]*Schema{
				"entityName":       str(""),
				"includeColumns":   boolean("", true),
				"includeRelations": boolean("", true),
			}, "entityName"),
		},
		{
			Name:        "search_entities",
			Description: "Search entities by criteria",
			Parameters: object(map[string]*Schema{
				"searchCriteria": object(map[string]*Schema{
					"byTag":           str(""),
					"byCode":          str(""),
					"byLabel":         str(""),
					"hasMediaColumns": boolean(""),
					"hasEnumColumns":  boolean(""),
				}),
			}),
		},
		{
			Name:        "get_enum_metadata",
			Description: "Get the metadata of an enumeration",
			Parameters: object(map[string]*Schema{
				"enumName":     str(""),
				"includeItems": boolean("", true),
			}, "enumName"),
		},
	},
	CategoryUtility: {
		{
			Name:        "generate_entity_code",
			Description: "Generate a complete entity definition",
			Parameters: object(map[string]*Schema{
				"entityConfig": {Type: "object"},
				"codeOptions": object(map[string]*Schema{
					"includeImports":  boolean("", true),
					"includeComments": boolean("", true),
					"formatCode":      boolean("", true),
				}),
			}, "entityConfig"),
		},
		{
			Name:        "generate_enum_code",
			Description: "Generate an enhanced enumeration definition",
			Parameters: object(map[string]*Schema{
				"enumConfig": {Type: "object"},
				"codeOptions": object(map[string]*Schema{
					"includeTypeAssertion": boolean("", true),
					"includeHelperMethods": boolean("", true),
				}),
			}, "enumConfig"),
		},
		{
			Name:        "handle_generation_error",
			Description: "Handle an error raised while generating definitions",
			Parameters: object(map[string]*Schema{
				"errorType":    oneOf("Error kind", "validation", "syntax", "type", "constraint"),
				"errorMessage": str(""),
				"suggestedFix": str(""),
			}, "errorType", "errorMessage"),
		},
	},
}

func withRequired(s *Schema, required ...string) *Schema {
	s.Required = required
	return s
}
