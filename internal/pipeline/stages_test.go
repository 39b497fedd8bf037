package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/funvibe/funxy/internal/astjson"
	"github.com/funvibe/funxy/internal/cache"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/driver"
)

func sourceDoc(t *testing.T) []byte {
	t.Helper()
	return []byte(`{
		"type": "Program",
		"sourceType": "script",
		"body": [{
			"type": "FunctionDeclaration",
			"id": {"type": "Identifier", "name": "f"},
			"params": [{"type": "Identifier", "name": "x"}],
			"generator": true,
			"body": {
				"type": "BlockStatement",
				"body": [{
					"type": "ExpressionStatement",
					"expression": {"type": "YieldExpression", "argument": {"type": "Identifier", "name": "x"}}
				}]
			}
		}]
	}`)
}

func TestDecodeStageParsesSource(t *testing.T) {
	ctx := &PipelineContext{FilePath: "unit.json", Source: sourceDoc(t)}
	ctx = DecodeStage{}.Process(ctx)
	if len(ctx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	if ctx.Unit == nil {
		t.Fatal("Unit is nil after DecodeStage")
	}
	if len(ctx.Unit.Body) != 1 {
		t.Fatalf("Unit.Body has %d statements, want 1", len(ctx.Unit.Body))
	}
}

func TestDecodeStageReportsMalformedJSON(t *testing.T) {
	ctx := &PipelineContext{FilePath: "bad.json", Source: []byte("not json")}
	ctx = DecodeStage{}.Process(ctx)
	if len(ctx.Errors) == 0 {
		t.Fatal("DecodeStage accepted malformed JSON without error")
	}
	if ctx.Unit != nil {
		t.Fatal("Unit should stay nil after a decode failure")
	}
}

func TestLowerStageRunsPassWhenNoCache(t *testing.T) {
	ctx := &PipelineContext{FilePath: "unit.json", Source: sourceDoc(t), Config: config.Default()}
	ctx = DecodeStage{}.Process(ctx)
	ctx = LowerStage{Pass: driver.New(config.Default(), nil)}.Process(ctx)
	if len(ctx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	if ctx.Lowered == nil {
		t.Fatal("Lowered is nil after LowerStage")
	}
	if ctx.CacheHit {
		t.Fatal("CacheHit = true with no cache configured")
	}
}

func TestLowerStagePopulatesAndThenReadsCache(t *testing.T) {
	store, err := cache.Open(filepath.Join(t.TempDir(), "transforms.sqlite"))
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	defer store.Close()

	cfg := config.Default()
	src := sourceDoc(t)

	ctx := &PipelineContext{FilePath: "unit.json", Source: src, Config: cfg, Cache: store}
	ctx = DecodeStage{}.Process(ctx)
	ctx = LowerStage{Pass: driver.New(cfg, nil)}.Process(ctx)
	if ctx.CacheHit {
		t.Fatal("first run should be a cache miss")
	}
	if len(ctx.Errors) != 0 {
		t.Fatalf("unexpected errors on first run: %v", ctx.Errors)
	}

	ctx2 := &PipelineContext{FilePath: "unit.json", Source: src, Config: cfg, Cache: store}
	ctx2 = DecodeStage{}.Process(ctx2)
	ctx2 = LowerStage{Pass: driver.New(cfg, nil)}.Process(ctx2)
	if !ctx2.CacheHit {
		t.Fatal("second run with identical source+config should hit the cache")
	}
	if ctx2.Lowered != nil {
		t.Fatal("a cache hit should populate Output directly, not Lowered")
	}
	if len(ctx2.Output) == 0 {
		t.Fatal("cache hit left Output empty")
	}
}

func TestEncodeStageSkipsOnCacheHit(t *testing.T) {
	ctx := &PipelineContext{CacheHit: true, Output: []byte(`{"cached":true}`)}
	out := EncodeStage{}.Process(ctx)
	if string(out.Output) != `{"cached":true}` {
		t.Fatalf("Output = %q, want the untouched cache-hit payload", out.Output)
	}
}

func TestEncodeStageMarshalsLowered(t *testing.T) {
	ctx := &PipelineContext{FilePath: "unit.json", Source: sourceDoc(t), Config: config.Default()}
	ctx = DecodeStage{}.Process(ctx)
	ctx = LowerStage{Pass: driver.New(config.Default(), nil)}.Process(ctx)
	ctx = EncodeStage{}.Process(ctx)

	if len(ctx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	if len(ctx.Output) == 0 {
		t.Fatal("EncodeStage produced no output")
	}

	reparsed, err := astjson.Unmarshal(ctx.Output)
	if err != nil {
		t.Fatalf("EncodeStage's output does not parse as an AST document: %v", err)
	}
	if reparsed.SourceType != "script" {
		t.Fatalf("SourceType = %q, want script", reparsed.SourceType)
	}
}
