package lnd

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ConnectionError marks a fault in the transport to the node rather than a
// failed command.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("lightning node connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// wrapGRPCError turns transport level gRPC failures into connection errors and
// leaves everything else untouched.
func wrapGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.Unavailable {
		return &ConnectionError{Err: err}
	}
	return err
}

// isUnknownNode reports whether GetNodeInfo failed because the key is not in
// the graph. lnd up to v0.17 answers with codes.Unknown and the text of
// channeldb.ErrGraphNodeNotFound, so the text is matched too.
func isUnknownNode(err error) bool {
	if status.Code(err) == codes.NotFound {
		return true
	}
	return strings.Contains(err.Error(), "unable to find node")
}
