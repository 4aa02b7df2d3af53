package meta

// TypeCategory groups entries of the type catalog
type TypeCategory string

const (
	CategoryExtension TypeCategory = "extension"
	CategoryPrimitive TypeCategory = "primitive"
)

// TypeDescriptor is one entry of the column type picker
type TypeDescriptor struct {
	Key      string       `json:"key"`
	Label    string       `json:"label"`
	Category TypeCategory `json:"category"`
}

var typeCatalog = []TypeDescriptor{
	{Key: string(ExtendAutoIncrementID), Label: "Auto Increment ID", Category: CategoryExtension},
	{Key: string(ExtendGUIDID), Label: "GUID ID", Category: CategoryExtension},
	{Key: string(ExtendSnowflakeID), Label: "Snowflake ID", Category: CategoryExtension},
	{Key: string(ExtendEnum), Label: "ADB Enum", Category: CategoryExtension},
	{Key: string(ExtendMedia), Label: "ADB Media", Category: CategoryExtension},

	{Key: "varchar", Label: "String", Category: CategoryPrimitive},
	{Key: "char", Label: "Fixed String", Category: CategoryPrimitive},
	{Key: "text", Label: "Text", Category: CategoryPrimitive},
	{Key: "int", Label: "Integer", Category: CategoryPrimitive},
	{Key: "bigint", Label: "Big Integer", Category: CategoryPrimitive},
	{Key: "smallint", Label: "Small Integer", Category: CategoryPrimitive},
	{Key: "tinyint", Label: "Tiny Integer", Category: CategoryPrimitive},
	{Key: "decimal", Label: "Decimal", Category: CategoryPrimitive},
	{Key: "float", Label: "Float", Category: CategoryPrimitive},
	{Key: "double", Label: "Double", Category: CategoryPrimitive},
	{Key: "boolean", Label: "Boolean", Category: CategoryPrimitive},
	{Key: "date", Label: "Date", Category: CategoryPrimitive},
	{Key: "datetime", Label: "DateTime", Category: CategoryPrimitive},
	{Key: "timestamp", Label: "Timestamp", Category: CategoryPrimitive},
	{Key: "time", Label: "Time", Category: CategoryPrimitive},
	{Key: "json", Label: "JSON", Category: CategoryPrimitive},
	{Key: "simple-array", Label: "Simple Array", Category: CategoryPrimitive},
	{Key: "simple-json", Label: "Simple JSON", Category: CategoryPrimitive},
	{Key: "uuid", Label: "UUID", Category: CategoryPrimitive},
	{Key: "enum", Label: "Enum", Category: CategoryPrimitive},
	{Key: "blob", Label: "Blob", Category: CategoryPrimitive},
	{Key: "binary", Label: "Binary", Category: CategoryPrimitive},
	{Key: "varbinary", Label: "Variable Binary", Category: CategoryPrimitive},
}

// TypeCatalog returns the extension types followed by the storage primitives
func TypeCatalog() []TypeDescriptor {
	out := make([]TypeDescriptor, len(typeCatalog))
	copy(out, typeCatalog)
	return out
}

// ExtensionTypes returns the extension entries of the catalog
func ExtensionTypes() []TypeDescriptor {
	return typesIn(CategoryExtension)
}

// PrimitiveTypes returns the storage primitive entries of the catalog
func PrimitiveTypes() []TypeDescriptor {
	return typesIn(CategoryPrimitive)
}

// LookupType finds a catalog entry by key. The primitive "enum" and the
// extension "adb-enum" are separate entries.
func LookupType(key string) (TypeDescriptor, bool) {
	for _, t := range typeCatalog {
		if t.Key == key {
			return t, true
		}
	}
	return TypeDescriptor{}, false
}

func typesIn(category TypeCategory) []TypeDescriptor {
	var out []TypeDescriptor
	for _, t := range typeCatalog {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}
