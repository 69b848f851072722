// skillprobe sends one utterance to the skill webhook and prints the
// reply, the way the openbuilder would render it. Handy for poking a
// running agent without a chatbot in front of it.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/medimatch/medimatch-agent/logger"
	"github.com/medimatch/medimatch-agent/types"
)

func main() {
	url := flag.String("url", "http://localhost:8080/kakao/skill", "Skill webhook URL")
	user := flag.String("user", "probe", "User ID keying the session")
	flag.Parse()

	logger.SetGlobalComponent("skillprobe")

	utterance := strings.Join(flag.Args(), " ")
	if utterance == "" {
		fmt.Fprintln(os.Stderr, "usage: skillprobe [-url URL] [-user ID] <utterance>")
		os.Exit(2)
	}

	req := types.SkillRequest{}
	req.UserRequest.Utterance = utterance
	req.UserRequest.User.ID = *user

	body, err := json.Marshal(req)
	if err != nil {
		logger.Fatal("encode request", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(*url, "application/json", bytes.NewReader(body))
	if err != nil {
		logger.Fatal("webhook unreachable", err)
	}
	defer resp.Body.Close()

	var skill types.SkillResponse
	if err := json.NewDecoder(resp.Body).Decode(&skill); err != nil {
		logger.Fatal("decode response", err)
	}

	printResponse(&skill)
}

func printResponse(r *types.SkillResponse) {
	for _, out := range r.Template.Outputs {
		switch {
		case out.SimpleText != nil:
			fmt.Println(out.SimpleText.Text)
		case out.BasicCard != nil:
			printCard(*out.BasicCard)
		case out.Carousel != nil:
			for i, card := range out.Carousel.Items {
				fmt.Printf("--- %d ---\n", i+1)
				printCard(card)
			}
		}
	}
	if len(r.Template.QuickReplies) > 0 {
		labels := make([]string, 0, len(r.Template.QuickReplies))
		for _, q := range r.Template.QuickReplies {
			labels = append(labels, q.Label)
		}
		fmt.Printf("[%s]\n", strings.Join(labels, " | "))
	}
}

func printCard(card types.BasicCard) {
	fmt.Println(card.Title)
	if card.Description != "" {
		fmt.Println(card.Description)
	}
	for _, b := range card.Buttons {
		fmt.Printf("  (%s) %s\n", b.Label, b.WebLinkURL)
	}
}
