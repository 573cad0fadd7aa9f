package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/yourusername/open-stdnum-gateway/pkg/identifier"
)

// The service is described with well-known types only, so clients need no
// generated stubs:
//
//	service StdnumService {
//	  rpc Inspect(google.protobuf.Struct) returns (google.protobuf.Struct);
//	  rpc Validate(google.protobuf.Struct) returns (google.protobuf.BoolValue);
//	  rpc Detect(google.protobuf.StringValue) returns (google.protobuf.StringValue);
//	}
const (
	StdnumServiceName = "stdnum.v1.StdnumService"

	StdnumServiceInspectProcedure  = "/stdnum.v1.StdnumService/Inspect"
	StdnumServiceValidateProcedure = "/stdnum.v1.StdnumService/Validate"
	StdnumServiceDetectProcedure   = "/stdnum.v1.StdnumService/Detect"
)

// newStdnumServiceHandler returns the path prefix to mount and the handler
// serving every procedure under it.
func newStdnumServiceHandler(g *Gateway) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(StdnumServiceInspectProcedure, connect.NewUnaryHandler(StdnumServiceInspectProcedure, g.rpcInspect))
	mux.Handle(StdnumServiceValidateProcedure, connect.NewUnaryHandler(StdnumServiceValidateProcedure, g.rpcValidate))
	mux.Handle(StdnumServiceDetectProcedure, connect.NewUnaryHandler(StdnumServiceDetectProcedure, g.rpcDetect))
	return "/" + StdnumServiceName + "/", mux
}

// identifierArgs reads {"kind": ..., "identifier": ...} from a request struct.
func identifierArgs(msg *structpb.Struct) (identifier.Kind, string, error) {
	fields := msg.GetFields()
	kind, err := identifier.ParseKind(fields["kind"].GetStringValue())
	if err != nil {
		return kind, "", connect.NewError(connect.CodeInvalidArgument, err)
	}
	raw := fields["identifier"].GetStringValue()
	if raw == "" {
		return kind, "", connect.NewError(connect.CodeInvalidArgument, errors.New("identifier is required"))
	}
	return kind, raw, nil
}

func (g *Gateway) rpcInspect(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	kind, raw, err := identifierArgs(req.Msg)
	if err != nil {
		return nil, err
	}
	res := g.inspect(ctx, kind, raw)

	out := map[string]any{
		"kind":  string(res.Kind),
		"input": res.Input,
		"valid": res.Valid,
	}
	for key, v := range map[string]string{
		"normalized": res.Normalized,
		"checkdigit": res.Checkdigit,
		"isbn10":     res.ISBN10,
		"isbn13":     res.ISBN13,
		"error":      res.Error,
	} {
		if v != "" {
			out[key] = v
		}
	}
	msg, err := structpb.NewStruct(out)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}

func (g *Gateway) rpcValidate(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[wrapperspb.BoolValue], error) {
	kind, raw, err := identifierArgs(req.Msg)
	if err != nil {
		return nil, err
	}
	res := g.inspect(ctx, kind, raw)
	return connect.NewResponse(wrapperspb.Bool(res.Valid)), nil
}

func (g *Gateway) rpcDetect(ctx context.Context, req *connect.Request[wrapperspb.StringValue]) (*connect.Response[wrapperspb.StringValue], error) {
	raw := req.Msg.GetValue()
	_, span := g.tracer.Start(ctx, "identifier.Detect")
	defer span.End()

	kind, ok := identifier.Detect(raw)
	if !ok {
		slog.Debug("detect found no match", "input", raw)
		return nil, connect.NewError(connect.CodeNotFound, errors.New("not a recognizable ISBN, ISSN or LCCN"))
	}
	return connect.NewResponse(wrapperspb.String(string(kind))), nil
}
