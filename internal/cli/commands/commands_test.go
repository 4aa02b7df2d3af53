package commands

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adisonshadow/adb/internal/web/server"
	"github.com/adisonshadow/adb/pkg/catalog"
	"github.com/adisonshadow/adb/pkg/enumsync"
	"github.com/adisonshadow/adb/pkg/meta"
)

const (
	validDir   = "testdata/valid"
	invalidDir = "testdata/invalid"
)

// runCommand executes the root command with args and captures both streams
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCommandContext(t, context.Background(), args...)
}

func runCommandContext(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

// mockDB routes openDB to a sqlmock connection for the duration of the test
func mockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	original := openDB
	openDB = func(driver, dsn string) (*sql.DB, error) {
		return db, nil
	}
	t.Cleanup(func() {
		openDB = original
		db.Close()
	})
	return mock
}

func TestTypesCommand(t *testing.T) {
	t.Run("table lists both categories", func(t *testing.T) {
		out, _, err := runCommand(t, "types")
		require.NoError(t, err)
		assert.Contains(t, out, "KEY")
		assert.Contains(t, out, "adb-snowflake-id")
		assert.Contains(t, out, "varchar")
	})

	t.Run("json filtered by category", func(t *testing.T) {
		out, _, err := runCommand(t, "types", "--category", "extension", "--format", "json")
		require.NoError(t, err)

		var types []meta.TypeDescriptor
		require.NoError(t, json.Unmarshal([]byte(out), &types))
		assert.Len(t, types, 5)
		for _, typ := range types {
			assert.Equal(t, meta.CategoryExtension, typ.Category)
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, _, err := runCommand(t, "types", "--category", "exotic")
		assert.ErrorContains(t, err, "unknown category")
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		_, _, err := runCommand(t, "types", "--format", "xml")
		assert.ErrorContains(t, err, "unsupported format")
	})
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid definitions", func(t *testing.T) {
		out, _, err := runCommand(t, "validate", "-d", validDir)
		require.NoError(t, err)

		assert.Contains(t, out, "✓ Order (2 columns)")
		assert.Contains(t, out, "✓ Customer (2 columns)")
		assert.Contains(t, out, "✓ order:status (3 values)")
		assert.Contains(t, out, "✓ All definitions are valid")
	})

	t.Run("reports every problem", func(t *testing.T) {
		out, _, err := runCommand(t, "validate", "-d", invalidDir)
		require.Error(t, err)
		assert.Equal(t, "2 definition(s) failed validation", err.Error())

		assert.Contains(t, out, "✗ Broken (1 columns)")
		assert.Contains(t, out, "1. EntityInfo.code is required")
		assert.Contains(t, out, "avatar: ColumnInfo.label is required")
		assert.Contains(t, out, "avatar: ADB Media type column must provide mediaConfig")
		assert.Contains(t, out, "✓ Fine (0 columns)")
		assert.Contains(t, out, "EnumInfo.code can only contain letters, numbers and colons")
		assert.Contains(t, out, "EnumItem config exists for undefined key: HIGH")
	})

	t.Run("json report", func(t *testing.T) {
		out, _, err := runCommand(t, "validate", "-d", invalidDir, "--format", "json")
		require.Error(t, err)

		var report ValidationReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.False(t, report.Valid)
		assert.Equal(t, 2, report.Invalid)
		require.Len(t, report.Entities, 2)
		assert.Equal(t, "Broken", report.Entities[0].Name)
		require.Len(t, report.Entities[0].Columns, 1)
		assert.Equal(t, "avatar", report.Entities[0].Columns[0].Member)
		assert.False(t, report.Entities[0].Columns[0].Result.IsValid)
		require.Len(t, report.Enums, 1)
		assert.Equal(t, "Level", report.Enums[0].Name)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, stderr, err := runCommand(t, "validate", "-d", "testdata/nope")
		assert.ErrorContains(t, err, "failed to load definitions")
		assert.Contains(t, stderr, "testdata/nope does not exist and the current directory has no adb.yaml")
	})
}

func TestEnumsListCommand(t *testing.T) {
	out, _, err := runCommand(t, "enums", "list", "-d", validDir)
	require.NoError(t, err)
	assert.Contains(t, out, "OrderStatus")
	assert.Contains(t, out, "order:status")
	assert.Contains(t, out, "enum-order-status-001")

	out, _, err = runCommand(t, "enums", "list", "-d", validDir, "--format", "json")
	require.NoError(t, err)

	var summaries []enumSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, 3, summaries[0].Values)
	assert.True(t, strings.HasSuffix(summaries[0].Source, "enums.yaml"))
}

func TestEnumsShowCommand(t *testing.T) {
	t.Run("table sorted by item sort", func(t *testing.T) {
		out, _, err := runCommand(t, "enums", "show", "order:status", "-d", validDir)
		require.NoError(t, err)

		assert.Contains(t, out, "Order Status")
		assert.Contains(t, out, "ADBEnum_order_status")
		paid := strings.Index(out, "PAID")
		shipped := strings.Index(out, "SHIPPED")
		pending := strings.Index(out, "PENDING")
		assert.True(t, paid < shipped && shipped < pending, "items should follow sort order:\n%s", out)
		assert.Contains(t, out, "disabled")
	})

	t.Run("lookup by name and id", func(t *testing.T) {
		for _, ref := range []string{"OrderStatus", "enum-order-status-001"} {
			out, _, err := runCommand(t, "enums", "show", ref, "-d", validDir, "--format", "json")
			require.NoError(t, err, ref)

			var view server.EnumView
			require.NoError(t, json.Unmarshal([]byte(out), &view))
			assert.Equal(t, "order:status", view.Code)
			require.Len(t, view.Items, 3)
			assert.Equal(t, "PAID", view.Items[0].Key)
		}
	})

	t.Run("unknown enumeration suggests similar codes", func(t *testing.T) {
		_, stderr, err := runCommand(t, "enums", "show", "order:stats", "-d", validDir)
		assert.ErrorContains(t, err, `enumeration "order:stats" not found`)
		assert.Contains(t, stderr, "ENUM NOT FOUND")
		assert.Contains(t, stderr, "Did you mean:")
		assert.Contains(t, stderr, "order:status")
	})
}

func TestEnumsSyncCommand(t *testing.T) {
	t.Run("inserts new records", func(t *testing.T) {
		mock := mockDB(t)
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "__enums__"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT .* FROM "__enums__" WHERE enum_id = \$1`).
			WithArgs("enum-order-status-001").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`INSERT INTO "__enums__"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectClose()

		out, _, err := runCommand(t, "enums", "sync", "-d", validDir)
		require.NoError(t, err)
		assert.Contains(t, out, "ADBEnum_order_status")
		assert.Contains(t, out, "✓ Synced 1 enumerations")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("through the redis cache", func(t *testing.T) {
		mr := miniredis.RunT(t)
		t.Setenv("ADB_REDIS_ADDR", mr.Addr())

		mock := mockDB(t)
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "__enums__"`).WillReturnResult(sqlmock.NewResult(0, 0))
		// lookup by the service, then by the cache before it saves
		mock.ExpectQuery(`SELECT .* WHERE enum_id = \$1`).WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`SELECT .* WHERE enum_id = \$1`).WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`INSERT INTO "__enums__"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
		mock.ExpectClose()

		require.NoError(t, mr.Set("adb:enum:code:order:status", "stale"))

		_, _, err := runCommand(t, "enums", "sync", "-d", validDir)
		require.NoError(t, err)
		assert.False(t, mr.Exists("adb:enum:code:order:status"), "save should drop cached entries")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports failures", func(t *testing.T) {
		mock := mockDB(t)
		mock.ExpectExec(`CREATE TABLE`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("connection reset"))
		mock.ExpectClose()

		_, _, err := runCommand(t, "enums", "sync", "-d", validDir)
		assert.ErrorContains(t, err, "1 of 1 enumerations failed to sync")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("table creation failure", func(t *testing.T) {
		mock := mockDB(t)
		mock.ExpectExec(`CREATE TABLE`).WillReturnError(errors.New("read-only database"))
		mock.ExpectClose()

		_, _, err := runCommand(t, "enums", "sync", "-d", validDir)
		assert.ErrorContains(t, err, "failed to create __enums__ table")
	})
}

func TestEnumsRecordsCommand(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock := mockDB(t)
	mock.ExpectQuery(`SELECT .* FROM "__enums__" WHERE is_active = \$1 ORDER BY code ASC`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "enum_id", "code", "label", "description", "items",
			"enum_name", "enum_values", "is_active", "created_at", "updated_at",
		}).AddRow(int64(3), "enum-order-status-001", "order:status", "Order Status", nil, `{}`,
			"ADBEnum_order_status", `{"PAID":"paid"}`, true, now, now))
	mock.ExpectClose()

	out, _, err := runCommand(t, "enums", "records", "--format", "json")
	require.NoError(t, err)

	var records []enumsync.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, int64(3), records[0].ID)
	assert.Equal(t, []string{"PAID"}, records[0].EnumValues.Keys())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnumsDeactivateCommand(t *testing.T) {
	t.Run("marks the row inactive", func(t *testing.T) {
		mock := mockDB(t)
		mock.ExpectExec(`UPDATE "__enums__" SET is_active = \$1, updated_at = \$2 WHERE enum_id = \$3`).
			WithArgs(false, sqlmock.AnyArg(), "enum-order-status-001").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectClose()

		out, _, err := runCommand(t, "enums", "deactivate", "enum-order-status-001")
		require.NoError(t, err)
		assert.Contains(t, out, "✓ Deactivated enum-order-status-001")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		mock := mockDB(t)
		mock.ExpectExec(`UPDATE "__enums__"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectClose()

		_, _, err := runCommand(t, "enums", "deactivate", "missing")
		assert.ErrorIs(t, err, enumsync.ErrNotFound)
	})
}

func TestEntitiesCommands(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		out, _, err := runCommand(t, "entities", "list", "-d", validDir)
		require.NoError(t, err)
		assert.Contains(t, out, "Order")
		assert.Contains(t, out, "Customer")
		assert.Contains(t, out, "shop,billing")
	})

	t.Run("list by tag", func(t *testing.T) {
		out, _, err := runCommand(t, "entities", "list", "-d", validDir, "--tag", "billing", "--format", "json")
		require.NoError(t, err)

		var summaries []server.EntitySummary
		require.NoError(t, json.Unmarshal([]byte(out), &summaries))
		require.Len(t, summaries, 1)
		assert.Equal(t, "Order", summaries[0].ClassName)
		assert.Equal(t, "orders", summaries[0].TableName)
		assert.Equal(t, 2, summaries[0].Columns)
	})

	t.Run("show by code", func(t *testing.T) {
		out, _, err := runCommand(t, "entities", "show", "shop:customer", "-d", validDir, "--format", "json")
		require.NoError(t, err)

		var details meta.EntityDetails
		require.NoError(t, json.Unmarshal([]byte(out), &details))
		assert.Equal(t, "Customer", details.ClassName)
		assert.Equal(t, meta.StatusEnabled, details.Info.Status)
		require.Len(t, details.Columns, 2)
		assert.Equal(t, "seq", details.Columns[0].Member)
		assert.Equal(t, meta.ExtendGUIDID, details.Columns[1].Info.ExtendType)
	})

	t.Run("show table", func(t *testing.T) {
		out, _, err := runCommand(t, "entities", "show", "Order", "-d", validDir)
		require.NoError(t, err)
		assert.Contains(t, out, "shop:order")
		assert.Contains(t, out, "adb-snowflake-id")
		assert.Contains(t, out, "field_order_status_001")
	})

	t.Run("show unknown", func(t *testing.T) {
		_, stderr, err := runCommand(t, "entities", "show", "Ordr", "-d", validDir)
		assert.ErrorContains(t, err, `entity "Ordr" not found`)
		assert.Contains(t, stderr, "ENTITY NOT FOUND")
	})
}

func TestIDsCommand(t *testing.T) {
	t.Run("auto increment", func(t *testing.T) {
		out, _, err := runCommand(t, "ids", "Customer", "seq", "-n", "3", "-d", validDir)
		require.NoError(t, err)
		assert.Equal(t, "100\n105\n110\n", out)
	})

	t.Run("v5 guid", func(t *testing.T) {
		out, _, err := runCommand(t, "ids", "Customer", "uid", "--name", "alice@example.com", "-d", validDir)
		require.NoError(t, err)
		want := uuid.NewSHA1(uuid.NameSpaceURL, []byte("alice@example.com")).String()
		assert.Equal(t, want+"\n", out)
	})

	t.Run("v5 guid without name", func(t *testing.T) {
		_, _, err := runCommand(t, "ids", "Customer", "uid", "-d", validDir)
		assert.Error(t, err)
	})

	t.Run("snowflake", func(t *testing.T) {
		out, _, err := runCommand(t, "ids", "shop:order", "id", "-n", "2", "-d", validDir)
		require.NoError(t, err)
		lines := strings.Fields(out)
		require.Len(t, lines, 2)
		assert.NotEqual(t, lines[0], lines[1])
	})

	t.Run("short ids", func(t *testing.T) {
		out, _, err := runCommand(t, "ids", "--short", "-n", "2")
		require.NoError(t, err)
		lines := strings.Fields(out)
		require.Len(t, lines, 2)
		for _, line := range lines {
			assert.Len(t, line, 26)
			assert.Equal(t, strings.ToLower(line), line)
		}
	})

	t.Run("errors", func(t *testing.T) {
		_, _, err := runCommand(t, "ids", "Order", "status", "-d", validDir)
		assert.ErrorContains(t, err, "has no id config")

		_, _, err = runCommand(t, "ids", "Order", "missing", "-d", validDir)
		assert.ErrorContains(t, err, "column Order.missing not found")

		_, _, err = runCommand(t, "ids", "Nobody", "id", "-d", validDir)
		assert.ErrorContains(t, err, `entity "Nobody" not found`)

		_, _, err = runCommand(t, "ids", "--short", "-n", "0")
		assert.ErrorContains(t, err, "count must be at least 1")

		_, _, err = runCommand(t, "ids", "Order")
		assert.Error(t, err)
	})
}

func TestToolsCommand(t *testing.T) {
	t.Run("openai", func(t *testing.T) {
		out, _, err := runCommand(t, "tools")
		require.NoError(t, err)

		var fns []catalog.Function
		require.NoError(t, json.Unmarshal([]byte(out), &fns))
		assert.Len(t, fns, len(catalog.Names()))
	})

	t.Run("claude by category", func(t *testing.T) {
		out, _, err := runCommand(t, "tools", "--category", "enum", "--format", "claude")
		require.NoError(t, err)
		assert.Contains(t, out, `"input_schema"`)

		var tools []catalog.ClaudeTool
		require.NoError(t, json.Unmarshal([]byte(out), &tools))
		assert.Len(t, tools, len(catalog.ByCategory(catalog.CategoryEnum)))
	})

	t.Run("single function table", func(t *testing.T) {
		out, _, err := runCommand(t, "tools", "get_enum_metadata", "--format", "table")
		require.NoError(t, err)
		assert.Contains(t, out, "get_enum_metadata")
		assert.NotContains(t, out, "create_adb_entity")
	})

	t.Run("unknown function", func(t *testing.T) {
		_, _, err := runCommand(t, "tools", "get_enum_metdata")
		assert.ErrorContains(t, err, "did you mean get_enum_metadata")
	})

	t.Run("unknown category", func(t *testing.T) {
		_, _, err := runCommand(t, "tools", "--category", "billing")
		assert.ErrorContains(t, err, "unknown category")
	})
}

func TestServeCommand(t *testing.T) {
	t.Run("flags", func(t *testing.T) {
		cmd := newServeCommand(&globalOptions{})
		flag := cmd.Flags().Lookup("addr")
		require.NotNil(t, flag)
		assert.Equal(t, "", flag.DefValue)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := runCommandContext(t, ctx, "serve", "--addr", "127.0.0.1:0", "-d", validDir)
		assert.NoError(t, err)
	})

	t.Run("explicit config must exist", func(t *testing.T) {
		_, _, err := runCommand(t, "serve", "--config", "testdata/missing.yaml")
		assert.ErrorContains(t, err, "failed to read config file")
	})
}
