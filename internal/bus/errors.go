// internal/bus/errors.go
package bus

import "fmt"

// TransactionError reports a single failed register transaction.
// Op is "read" or "write"; Addr is the device byte offset.
type TransactionError struct {
	Op   string
	Addr uint32
	Err  error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("bus %s at 0x%04X failed: %v", e.Op, e.Addr, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}
