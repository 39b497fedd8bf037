// Package hostrpc is spec §7's optional channel for surfacing an
// internal compiler error to the host pipeline. It is grounded on the
// teacher's dynamic gRPC invocation pattern in
// internal/evaluator/builtins_grpc.go: rather than generating and
// compiling .pb.go stubs for one small schema, the descriptor is parsed
// at runtime with protoparse and the call is made against a
// dynamic.Message built straight from that descriptor.
package hostrpc

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/funvibe/funxy/internal/direrr"
)

//go:embed diagnostics.proto
var schemaSource string

// Diagnostic is the Go-side shape of one report; Reporter converts it to
// a dynamic.Message against the embedded schema before sending it.
type Diagnostic struct {
	Unit     string
	Location string
	Message  string
	Fatal    bool
}

// Reporter delivers Diagnostics to a configured host endpoint. The zero
// value (or one constructed with an empty endpoint) is a no-op — most
// invocations of this pass run with no host listening, and spec §7 never
// makes this channel load-bearing for correctness.
type Reporter struct {
	endpoint string
	conn     *grpc.ClientConn
	method   *desc.MethodDescriptor
}

// New loads the embedded schema and, if endpoint is non-empty, opens a
// connection. Schema parse failure is an internal detail of this package
// and never propagates to the pass's own result — a Reporter that fails
// to initialize just stays a no-op, since this channel is advisory only.
func New(endpoint string) *Reporter {
	r := &Reporter{endpoint: endpoint}
	if endpoint == "" {
		return r
	}

	fds, err := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{
			"diagnostics.proto": schemaSource,
		}),
	}.ParseFiles("diagnostics.proto")
	if err != nil || len(fds) == 0 {
		return r
	}
	svc := fds[0].FindService("hostrpc.Diagnostics")
	if svc == nil {
		return r
	}
	method := svc.FindMethodByName("Report")
	if method == nil {
		return r
	}

	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return r
	}
	r.conn = conn
	r.method = method
	return r
}

// Report sends d to the configured host endpoint. A Reporter with no
// endpoint configured (or that failed to initialize) silently does
// nothing — per spec §7, this channel is never required for a correct
// transform, only for the host to be told about one that failed.
func (r *Reporter) Report(d Diagnostic) {
	if r == nil || r.conn == nil || r.method == nil {
		return
	}

	req := dynamic.NewMessage(r.method.GetInputType())
	req.SetFieldByName("unit", d.Unit)
	req.SetFieldByName("location", d.Location)
	req.SetFieldByName("message", d.Message)
	req.SetFieldByName("fatal", d.Fatal)
	resp := dynamic.NewMessage(r.method.GetOutputType())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = r.conn.Invoke(ctx, "/hostrpc.Diagnostics/Report", req, resp)
}

// ReportError is a convenience for the Driver: it reports err only when
// it is (or wraps) a direrr.Internal, matching spec §7's "fatal,
// surfaced as an internal compiler error to the host pipeline" —
// a direrr.Malformed never reaches here, it is the pass's own problem to
// leave as unspecified behavior rather than escalate.
func (r *Reporter) ReportError(unit string, err error) {
	if !direrr.IsInternal(err) {
		return
	}
	r.Report(Diagnostic{Unit: unit, Message: fmt.Sprintf("%v", err), Fatal: true})
}

// Close releases the underlying connection, if one was opened.
func (r *Reporter) Close() error {
	if r == nil || r.conn == nil {
		return nil
	}
	return r.conn.Close()
}
