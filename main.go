// main is the entry point for the dailyq CLI.
package main

import (
	"github.com/dailyq/dailyq/cmd"
	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/internal/iocache"
)

func main() {
	cmd.SetHistoryManager(iocache.Manager)

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("dailyq failed", err)
	}
}
