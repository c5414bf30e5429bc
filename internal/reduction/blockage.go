package reduction

import (
	"fmt"
	"math"

	apperrors "tunnelcli/internal/errors"
)

// BlockageFactor returns the solid-blockage factor ε = K·V/S^1.5
func BlockageFactor(k, modelVolume, tunnelArea float64) (float64, error) {
	if !isFinite(tunnelArea) || tunnelArea <= 0 {
		return 0, apperrors.NewInvalidInputError(
			fmt.Sprintf("tunnel cross-section must be positive, got %v", tunnelArea),
		).WithField("tunnel_area")
	}
	if !isFinite(modelVolume) || modelVolume < 0 {
		return 0, apperrors.NewInvalidInputError(
			fmt.Sprintf("model volume must be non-negative, got %v", modelVolume),
		).WithField("model_volume")
	}
	if !isFinite(k) || k < 0 {
		return 0, apperrors.NewInvalidInputError(
			fmt.Sprintf("blockage constant must be non-negative, got %v", k),
		).WithField("blockage_k")
	}
	return k * modelVolume / math.Pow(tunnelArea, 1.5), nil
}

// CorrectBlockage scales velocity and Reynolds number by (1+ε)
func CorrectBlockage(flow FlowState, k, modelVolume, tunnelArea float64) (FlowState, float64, error) {
	eps, err := BlockageFactor(k, modelVolume, tunnelArea)
	if err != nil {
		return FlowState{}, 0, err
	}
	return ApplyBlockage(flow, eps), eps, nil
}

// ApplyBlockage scales a flow state by a precomputed blockage factor
func ApplyBlockage(flow FlowState, eps float64) FlowState {
	return FlowState{
		Velocity: flow.Velocity * (1 + eps),
		Reynolds: flow.Reynolds * (1 + eps),
	}
}
