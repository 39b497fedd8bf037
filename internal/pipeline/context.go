package pipeline

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/cache"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/hostrpc"
)

// Processor is one pipeline stage. Process takes the context left by the
// previous stage and returns the context for the next one — mirrors the
// teacher's own ParserProcessor/SemanticAnalyzerProcessor/
// ExecutionProcessor shape (parse -> analyze -> evaluate), here
// specialized to decode -> lower -> encode.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries one compilation unit's state through
// cmd/regenerate's three stages. Unlike the teacher's own
// PipelineContext (which accumulates a token stream, a symbol table, a
// module loader and inferred types across its four-stage parse/analyze/
// evaluate/execute pipeline), this one only needs what the lowering pass
// itself and the CLI's caching/reporting wrapper around it need.
type PipelineContext struct {
	FilePath string
	Source   []byte // raw input bytes for this unit, before decoding

	Config   config.Config
	Cache    *cache.Store // nil when caching is disabled
	Reporter *hostrpc.Reporter

	Unit     *ast.Program // set by the decode stage
	Lowered  *ast.Program // set by the lower stage
	Output   []byte       // set by the encode stage

	CacheHit bool
	Errors   []error
}
