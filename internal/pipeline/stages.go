package pipeline

import (
	"context"
	"fmt"

	"github.com/funvibe/funxy/internal/astjson"
	"github.com/funvibe/funxy/internal/cache"
	"github.com/funvibe/funxy/internal/direrr"
	"github.com/funvibe/funxy/internal/driver"
)

// DecodeStage turns ctx.Source (an ESTree-shaped JSON document) into
// ctx.Unit, mirroring the teacher's own ParserProcessor's place at the
// front of its pipeline.
type DecodeStage struct{}

func (DecodeStage) Process(ctx *PipelineContext) *PipelineContext {
	unit, err := astjson.Unmarshal(ctx.Source)
	if err != nil {
		ctx.Errors = append(ctx.Errors, fmt.Errorf("%s: decoding AST: %w", ctx.FilePath, err))
		return ctx
	}
	ctx.Unit = unit
	return ctx
}

// LowerStage runs internal/driver.Pass over ctx.Unit, consulting
// ctx.Cache first when one is configured: a hit restores a previously
// rendered output document without re-running the Case Handler, keyed
// on the unit's own source text and the active Config's fingerprint
// (so any change to either is a miss). A miss runs the Pass and, on
// success, records the result for next time.
type LowerStage struct {
	Pass *driver.Pass
}

func (s LowerStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Unit == nil {
		return ctx
	}

	var key cache.Key
	if ctx.Cache != nil {
		key = cache.NewKey(string(ctx.Source), ctx.Config.Fingerprint())
		if entry, ok := ctx.Cache.Lookup(context.Background(), key); ok {
			ctx.CacheHit = true
			ctx.Output = []byte(entry.OutputJSON)
			return ctx
		}
	}

	out, err := s.Pass.Run(ctx.Unit)
	if err != nil {
		internalErr := &direrr.Internal{Where: "pipeline.LowerStage", Detail: err.Error()}
		ctx.Errors = append(ctx.Errors, internalErr)
		return ctx
	}
	ctx.Lowered = out

	if ctx.Cache != nil {
		encoded, err := astjson.Marshal(out)
		if err == nil {
			_ = ctx.Cache.Put(context.Background(), key, cache.Entry{
				OutputJSON:  string(encoded),
				RuntimeUsed: s.Pass.RuntimeUsed(),
			})
		}
	}
	return ctx
}

// EncodeStage renders ctx.Lowered to ctx.Output as JSON. Skipped when a
// cache hit already populated ctx.Output directly in LowerStage.
type EncodeStage struct {
	Pretty bool
}

func (s EncodeStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.CacheHit || ctx.Lowered == nil {
		return ctx
	}
	var (
		out []byte
		err error
	)
	if s.Pretty {
		out, err = astjson.MarshalIndent(ctx.Lowered)
	} else {
		out, err = astjson.Marshal(ctx.Lowered)
	}
	if err != nil {
		ctx.Errors = append(ctx.Errors, fmt.Errorf("%s: encoding AST: %w", ctx.FilePath, err))
		return ctx
	}
	ctx.Output = out
	return ctx
}
