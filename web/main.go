package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-light-simulator/pkg/simulator"
	"github.com/df07/go-light-simulator/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	workers := flag.Int("workers", 2, "Number of tracer threads")
	segments := flag.Int("segments", 10000, "Light segments to trace per frame")
	flag.Parse()

	config := simulator.DefaultConfig()
	config.NumTracers = *workers
	config.SegmentBudget = *segments

	webServer := server.NewServer(*port, config)

	log.Printf("Light Ray Simulator Web Server")
	log.Printf("Visit http://localhost:%d for a live view", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
