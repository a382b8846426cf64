package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/robotalks/picoboot.go/pkg/remote"
)

var (
	mqttURL = "mqtt://localhost:1883/picoboot/"
)

func init() {
	if val := os.Getenv("PICOBOOT_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := remote.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}

	q.Sub("#", remote.Handler(func(topic string, payload []byte) {
		if strings.HasSuffix(topic, "/meta") || strings.HasSuffix(topic, "/cmd") {
			log.Printf("%s: %s", topic, string(payload))
			return
		}
		ev, err := remote.DecodeEvent(payload)
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		log.Printf("%s: %s", topic, ev)
	}))
	q.Connect()
	<-(chan struct{})(nil)
}
