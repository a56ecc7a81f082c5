package controller

import "github.com/pkg/errors"

// ConfigurationError marks a problem detected at Configure time that leaves
// the controller unusable until it is re-configured: an unknown critic
// name, an invalid motion-model name at first selection, a non-positive
// model_dt, a zero batch_size/time_steps, or a non-positive temperature.
type ConfigurationError struct {
	cause error
}

// NewConfigurationError wraps cause as a ConfigurationError.
func NewConfigurationError(cause error) *ConfigurationError {
	return &ConfigurationError{cause: cause}
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.cause.Error()
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *ConfigurationError) Unwrap() error { return e.cause }

// RuntimeSoftWarning marks a problem that is logged but does not stop the
// controller from proceeding: an unknown motion-model name on
// re-configuration. An empty reference path is only logged by EvalControl
// and is not returned as a RuntimeSoftWarning.
type RuntimeSoftWarning struct {
	cause error
}

// NewRuntimeSoftWarning wraps cause as a RuntimeSoftWarning.
func NewRuntimeSoftWarning(cause error) *RuntimeSoftWarning {
	return &RuntimeSoftWarning{cause: cause}
}

func (e *RuntimeSoftWarning) Error() string {
	return "soft warning: " + e.cause.Error()
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *RuntimeSoftWarning) Unwrap() error { return e.cause }

// ErrInfeasiblePlan marks the case where every sampled trajectory in every
// iteration triggered the obstacle critic's lethal sentinel. This
// controller still returns the softmax result in that case (CostInf is
// finite, so the combination remains well-defined); ErrInfeasiblePlan is
// surfaced alongside the command so the host can decide whether to act on
// it, rather than by silently substituting a zero twist.
var ErrInfeasiblePlan = errors.New("every sampled trajectory triggered the obstacle critic's lethal sentinel")
