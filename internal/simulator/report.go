package simulator

import (
	"fmt"
	"io"
)

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, res *Result, seed int64) {
	stats := res.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS for %s strategy ===\n", res.Strategy)
	fmt.Fprintf(w, "Rounds played: %d (seed %d)\n", stats.Rounds, seed)
	fmt.Fprintf(w, "Wins: %d (%.1f%%)  Losses: %d (%.1f%%)  Pushes: %d (%.1f%%)\n",
		stats.Wins, stats.Rate(stats.Wins)*100,
		stats.Losses, stats.Rate(stats.Losses)*100,
		stats.Pushes, stats.Rate(stats.Pushes)*100)
	fmt.Fprintf(w, "Blackjacks: %d  Player busts: %d  Dealer busts: %d\n",
		stats.Blackjacks, stats.PlayerBust, stats.DealerBust)
	fmt.Fprintf(w, "Average hand: %.2f cards\n", stats.AvgCards())

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f bets/round\n", stats.Mean())
	fmt.Fprintf(w, "Std Dev: %.4f bets\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f bets\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] bets/round\n", low, high)
	fmt.Fprintf(w, "Net: %d chips on %d wagered (house edge %.2f%%)\n",
		stats.NetChips, stats.Wagered, stats.HouseEdge()*100)
	if res.Rebuys > 0 {
		fmt.Fprintf(w, "Rebuys: %d\n", res.Rebuys)
	}
}
