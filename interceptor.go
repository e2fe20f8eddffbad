package rivet

import "context"

// RoundTripFunc represents the next stage in an interceptor chain. It is
// passed to [UnaryInterceptor] functions to invoke the next interceptor or
// the transport itself.
type RoundTripFunc func(ctx context.Context, req *ResolvedRequest) (*Response, error)

// UnaryInterceptor wraps the execution of a single round trip.
//
// Interceptors can inspect or annotate the compiled request (headers are the
// usual target), inspect the response, or short-circuit by returning an
// error without calling next. They must not retry: retry policy belongs to
// the transport, not to this layer.
//
//	func authInterceptor(token string) rivet.UnaryInterceptor {
//	    return func(ctx context.Context, req *rivet.ResolvedRequest, next rivet.RoundTripFunc) (*rivet.Response, error) {
//	        req.Header.Set("X-Auth-Token", token)
//	        return next(ctx, req)
//	    }
//	}
type UnaryInterceptor func(ctx context.Context, req *ResolvedRequest, next RoundTripFunc) (*Response, error)

// chainInterceptors composes interceptors around final. The first
// interceptor in the slice is the outermost one (runs first).
func chainInterceptors(interceptors []UnaryInterceptor, final RoundTripFunc) RoundTripFunc {
	chain := final
	for i := len(interceptors) - 1; i >= 0; i-- {
		current := interceptors[i]
		next := chain
		chain = func(ctx context.Context, req *ResolvedRequest) (*Response, error) {
			return current(ctx, req, next)
		}
	}
	return chain
}
