package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sift"
	"github.com/aretw0/sift/pkg/dsl"
	"github.com/aretw0/sift/pkg/registry"
	"github.com/aretw0/sift/pkg/schema"
)

func testEngine(t *testing.T) *sift.Engine {
	t.Helper()

	product := dsl.New("Product")
	product.Int("product_id").Wire("productId").Required()
	product.String("item_name").Wire("itemName").Required()
	product.Int("stock_count").Wire("stockCount").Default(int64(0)).Check(schema.GE(0))
	product.StringList("tags").Default([]string{})

	strict := dsl.New("Strict")
	strict.Int("strict_id").Required().Strict()

	user := dsl.New("User")
	user.String("username").Required()
	address := dsl.New("Address")
	address.String("street").Required()
	user.Object("address", address).Required()

	reg, err := registry.NewFromSpecs(product.Spec(), strict.Spec(), user.Spec())
	require.NoError(t, err)

	engine, err := sift.New("", sift.WithCatalog(reg))
	require.NoError(t, err)
	return engine
}

func runFill(t *testing.T, engine *sift.Engine, input string, opts FillOptions) string {
	t.Helper()

	var out bytes.Buffer
	opts.Input = strings.NewReader(input)
	opts.Output = &out
	require.NoError(t, RunFill(engine, opts))
	return out.String()
}

func TestRunFill(t *testing.T) {
	engine := testEngine(t)

	t.Run("Valid Submission", func(t *testing.T) {
		out := runFill(t, engine, "101\nWireless Mouse\n50\nred, blue\n", FillOptions{Schema: "Product"})

		assert.Contains(t, out, "Filling 'Product' (4 fields)")
		assert.Contains(t, out, "product_id (int, required): ")
		assert.Contains(t, out, "stock_count (int, default 0): ")
		assert.Contains(t, out, ">>> Valid.")
		assert.Contains(t, out, "\"product_id\": 101")
		assert.Contains(t, out, "\"productId\": 101")
		assert.Contains(t, out, "\"blue\"")
	})

	t.Run("Skipped Fields Take Defaults", func(t *testing.T) {
		out := runFill(t, engine, "101\nWireless Mouse\n\n\n", FillOptions{Schema: "Product"})

		assert.Contains(t, out, ">>> Valid.")
		assert.Contains(t, out, "\"stock_count\": 0")
		assert.Contains(t, out, "\"tags\": []")
	})

	t.Run("Rejection Lists Issues", func(t *testing.T) {
		out := runFill(t, engine, "\nWireless Mouse\n-5\n\n", FillOptions{Schema: "Product"})

		assert.Contains(t, out, ">>> Rejected with 2 issue(s).")
		assert.Contains(t, out, "  - product_id: field required")
		assert.Contains(t, out, "  - stock_count: must be at least 0")
		assert.NotContains(t, out, ">>> Valid.")
	})

	t.Run("EOF Leaves Rest Absent", func(t *testing.T) {
		out := runFill(t, engine, "101\n", FillOptions{Schema: "Product"})

		assert.Contains(t, out, ">>> Rejected with 1 issue(s).")
		assert.Contains(t, out, "  - item_name: field required")
	})

	t.Run("Strict Field Parses Natively", func(t *testing.T) {
		out := runFill(t, engine, "123\n", FillOptions{Schema: "Strict"})

		assert.Contains(t, out, ">>> Valid.")
		assert.Contains(t, out, "\"strict_id\": 123")
	})

	t.Run("Nested Object Prompts With Path", func(t *testing.T) {
		out := runFill(t, engine, "kay\n1 Main St\n", FillOptions{Schema: "User"})

		assert.Contains(t, out, "address.street (string, required): ")
		assert.Contains(t, out, ">>> Valid.")
		assert.Contains(t, out, "\"street\": \"1 Main St\"")
	})

	t.Run("Unknown Schema", func(t *testing.T) {
		var out bytes.Buffer
		err := RunFill(engine, FillOptions{
			Schema: "Nope",
			Input:  strings.NewReader(""),
			Output: &out,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema not found")
	})
}

func TestRunFill_JSONMode(t *testing.T) {
	engine := testEngine(t)

	t.Run("Valid", func(t *testing.T) {
		out := runFill(t, engine, "101\nWireless Mouse\n\n\n", FillOptions{Schema: "Product", JSON: true})

		// Prompts are suppressed, stdout is exactly one JSON object.
		assert.NotContains(t, out, ">>>")
		var verdict struct {
			OK     bool           `json:"ok"`
			Record map[string]any `json:"record"`
			Wire   map[string]any `json:"wire"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &verdict))
		assert.True(t, verdict.OK)
		assert.Equal(t, float64(101), verdict.Record["product_id"])
		assert.Contains(t, verdict.Wire, "productId")
	})

	t.Run("Rejected", func(t *testing.T) {
		out := runFill(t, engine, "\n\n\n\n", FillOptions{Schema: "Product", JSON: true})

		var verdict struct {
			OK     bool             `json:"ok"`
			Errors []map[string]any `json:"errors"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &verdict))
		assert.False(t, verdict.OK)
		require.Len(t, verdict.Errors, 2)
		assert.Equal(t, "product_id", verdict.Errors[0]["path"])
	})
}

func TestRunFill_RecordsSession(t *testing.T) {
	engine := testEngine(t)

	runFill(t, engine, "\n\n\n\n", FillOptions{Schema: "Product", Session: "cli-demo"})

	attempts, err := engine.Attempts(context.Background(), "cli-demo")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "Product", attempts[0].Schema)
	assert.False(t, attempts[0].OK)
}
