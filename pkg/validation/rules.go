package validation

import (
	"regexp"

	"github.com/adisonshadow/adb/pkg/meta"
)

var codePattern = regexp.MustCompile(`^[a-zA-Z0-9:]+$`)

// ValidCode reports whether code is a colon-delimited business key made of
// letters and digits
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

// CheckEntityInfo checks the required fields, code format and status
func CheckEntityInfo(info meta.EntityInfo) Result {
	r := Valid()
	checkIdentity(&r, "EntityInfo", info.ID, info.Code, info.Label)

	if info.Status != "" && !info.Status.Valid() {
		r.Add("EntityInfo.status must be enabled, disabled or archived")
	}
	return r
}

// CheckEnumInfo checks the required fields and code format
func CheckEnumInfo(info meta.EnumInfo) Result {
	r := Valid()
	checkIdentity(&r, "EnumInfo", info.ID, info.Code, info.Label)
	return r
}

// CheckEnumItem checks a single enumeration item
func CheckEnumItem(item meta.EnumItem) Result {
	r := Valid()
	if item.Label == "" {
		r.Add("EnumItem.label is required")
	}
	return r
}

func checkIdentity(r *Result, kind, id, code, label string) {
	if id == "" {
		r.Addf("%s.id is required", kind)
	}
	if code == "" {
		r.Addf("%s.code is required", kind)
	}
	if label == "" {
		r.Addf("%s.label is required", kind)
	}
	if code != "" && !ValidCode(code) {
		r.Addf("%s.code can only contain letters, numbers and colons", kind)
	}
}

// CheckColumnInfo checks the required fields, that a recognized extend type
// carries its config, and the bounds of every populated config
func CheckColumnInfo(info meta.ColumnInfo) Result {
	r := Valid()

	if info.ID == "" {
		r.Add("ColumnInfo.id is required")
	}
	if info.Label == "" {
		r.Add("ColumnInfo.label is required")
	}

	switch info.ExtendType {
	case meta.ExtendMedia:
		if info.Media == nil {
			r.Add("ADB Media type column must provide mediaConfig")
		}
	case meta.ExtendEnum:
		if info.Enum == nil {
			r.Add("ADB Enum type column must provide enumConfig")
		}
	case meta.ExtendAutoIncrementID:
		if info.AutoIncrementID == nil {
			r.Add("ADB Auto-increment-id type column must provide autoIncrementIdConfig")
		}
	case meta.ExtendGUIDID:
		if info.GUIDID == nil {
			r.Add("ADB Guid-id type column must provide guidIdConfig")
		}
	case meta.ExtendSnowflakeID:
		if info.SnowflakeID == nil {
			r.Add("ADB Snowflake-id type column must provide snowflakeIdConfig")
		}
	}

	if info.ExtensionCount() > 1 {
		r.Add("ColumnInfo can only provide one extension config")
	}

	if info.Media != nil {
		checkMedia(&r, info.Media)
	}
	if info.Enum != nil && info.Enum.Enum == nil {
		r.Add("EnumConfig.enum is required")
	}
	if info.AutoIncrementID != nil {
		checkAutoIncrement(&r, info.AutoIncrementID)
	}
	if info.GUIDID != nil {
		checkGUID(&r, info.GUIDID)
	}
	if info.SnowflakeID != nil {
		checkSnowflake(&r, info.SnowflakeID)
	}

	return r
}

func checkMedia(r *Result, cfg *meta.MediaConfig) {
	if cfg.MediaType == "" {
		r.Add("MediaConfig.mediaType is required")
	} else if !cfg.MediaType.Valid() {
		r.Add("MediaConfig.mediaType must be one of: image, video, audio, document, file")
	}
	if len(cfg.Formats) == 0 {
		r.Add("MediaConfig.formats cannot be empty")
	}
	if cfg.MaxSize != nil && *cfg.MaxSize <= 0 {
		r.Add("MediaConfig.maxSize must be greater than 0")
	}
}

func checkAutoIncrement(r *Result, cfg *meta.AutoIncrementIDConfig) {
	if cfg.StartValue != nil && *cfg.StartValue < 1 {
		r.Add("AutoIncrementIdConfig.startValue must be greater than 0")
	}
	if cfg.Increment != nil && *cfg.Increment < 1 {
		r.Add("AutoIncrementIdConfig.increment must be greater than 0")
	}
}

func checkGUID(r *Result, cfg *meta.GUIDIDConfig) {
	if cfg.Version != "" && !cfg.Version.Valid() {
		r.Add("GuidIdConfig.version must be one of: v1, v4, v5")
	}
	if cfg.Format != "" && !cfg.Format.Valid() {
		r.Add("GuidIdConfig.format must be one of: default, braced, binary, urn")
	}
}

func checkSnowflake(r *Result, cfg *meta.SnowflakeIDConfig) {
	if cfg.MachineID != nil && (*cfg.MachineID < 0 || *cfg.MachineID > 1023) {
		r.Add("SnowflakeIdConfig.machineId must be between 0 and 1023")
	}
	if cfg.DatacenterID != nil && (*cfg.DatacenterID < 0 || *cfg.DatacenterID > 31) {
		r.Add("SnowflakeIdConfig.datacenterId must be between 0 and 31")
	}
	if cfg.Format != "" && !cfg.Format.Valid() {
		r.Add("SnowflakeIdConfig.format must be one of: number, string")
	}
}
