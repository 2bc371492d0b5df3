package util

import (
	"math"

	"cpu-scheduler-simulator/internal/responses"
)

// CalculateAverage returns the mean waiting and turnaround times rounded to two
// decimals. Both are 0 when there are no processes.
func CalculateAverage(proccessDetails []responses.ProcessResponse) (averageWaitingTime, averageTurnAroundTime float64) {
	if len(proccessDetails) == 0 {
		return 0, 0
	}

	var waitingTimeSum float64
	var turnAroundTimeSum float64
	for _, proccess := range proccessDetails {
		waitingTimeSum += proccess.WaitingTime
		turnAroundTimeSum += proccess.TurnAroundTime
	}

	proccessCount := float64(len(proccessDetails))
	averageWaitingTime = Round(waitingTimeSum/proccessCount, 2)
	averageTurnAroundTime = Round(turnAroundTimeSum/proccessCount, 2)
	return
}

func Round(value float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(value*pow) / pow
}

// Ratio divides and rounds to two decimals, returning 0 for a zero denominator.
func Ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return Round(numerator/denominator, 2)
}
