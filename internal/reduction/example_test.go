package reduction

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"tunnelcli/pkg/contracts/domain"
)

func Example_reduce() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	geom, err := NewGeometry(StrategyAnalytic, 0, 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	reducer, err := NewReducer(DefaultParams(), geom, logger)
	if err != nil {
		fmt.Println(err)
		return
	}

	result, err := reducer.Reduce(context.Background(), domain.Measurement{
		Source: "example.dat",
		AoA:    5.0,
		Uinf:   20.0,
		X:      []float64{0.0, 0.1, 0.2, 0.3},
		Y:      []float64{0.01, 0.02, -0.01, -0.02},
		P:      []float64{-50.0, -40.0, 30.0, 35.0},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("AoA = %.1f deg\n", result.AoA)
	fmt.Printf("Re = %.0f\n", result.Corrected.Reynolds)
	fmt.Printf("c_l = %.4f\n", result.Lift)
	// Output:
	// AoA = 5.0 deg
	// Re = 628469
	// c_l = 0.0313
}

func ExampleNewGeometry() {
	for _, s := range []Strategy{StrategyAnalytic, StrategyTabulated} {
		g, _ := NewGeometry(s, 0, 0)
		area, _ := g.Area(1)
		fmt.Printf("%s: %.6f\n", g.Name(), area)
	}
	// Output:
	// analytic: 0.123315
	// tabulated: 0.123289
}
