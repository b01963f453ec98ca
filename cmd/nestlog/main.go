// nestlog is a local-first logger for infant care: sleep, feeds, diapers,
// activities, milestones and weight, with day-by-day charts and optional
// AI summaries.
package main

func main() {
	Execute()
}
