package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"fiche-backend/internal/bootstrap"
	"fiche-backend/internal/fiches"
	"fiche-backend/internal/llm"
	"fiche-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	requestPath := flag.String("request", "", "Path to a JSON job posting request (optional)")
	call := flag.Bool("call", false, "Send the prompt to the configured provider")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider (openai or gemini)")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	outPath := flag.String("out", "", "Path to write the completion (optional)")
	flag.Parse()

	req := sampleRequest()
	if strings.TrimSpace(*requestPath) != "" {
		data, err := os.ReadFile(*requestPath)
		if err != nil {
			exitErr(fmt.Sprintf("read request: %v", err))
		}
		req = fiches.JobPostingRequest{}
		if err := json.Unmarshal(data, &req); err != nil {
			exitErr(fmt.Sprintf("invalid request json: %v", err))
		}
	}
	if err := req.Validate(); err != nil {
		exitErr(err.Error())
	}

	prompt := fiches.BuildUserPrompt(req)
	fmt.Println("=== system ===")
	fmt.Println(llm.FicheSystemPrompt())
	fmt.Println("=== user ===")
	fmt.Println(prompt)
	if !*call {
		return
	}

	modelSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "model" {
			modelSet = true
		}
	})
	cfg = withProvider(cfg, *provider, *model, modelSet)
	if err := cfg.Validate(); err != nil {
		exitErr(err.Error())
	}
	client, err := bootstrap.BuildLLM(context.Background(), cfg)
	if err != nil {
		exitErr(err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LLMTimeout)
	defer cancel()
	text, err := client.Complete(ctx, llm.NewCompletionRequest(llm.FicheSystemPrompt(), prompt))
	if err != nil {
		if kind := llm.Classify(err); kind != nil {
			exitErr(fmt.Sprintf("completion (%v): %v", kind, err))
		}
		exitErr(fmt.Sprintf("completion: %v", err))
	}
	text = fiches.CleanContent(text)

	fmt.Println("=== completion ===")
	fmt.Println(text)
	if *outPath != "" {
		if err := os.WriteFile(*outPath, []byte(text+"\n"), 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}
}

// withProvider applies the -provider and -model flags. Switching provider
// without -model picks that provider's default model.
func withProvider(cfg config.Config, provider, model string, modelSet bool) config.Config {
	selected := config.NormalizeProvider(provider)
	cfg.LLMModel = model
	if !modelSet && selected != cfg.LLMProvider {
		cfg.LLMModel = config.DefaultModel(selected)
	}
	cfg.LLMProvider = selected
	return cfg
}

func sampleRequest() fiches.JobPostingRequest {
	return fiches.JobPostingRequest{
		Title:           "Développeur Full-Stack",
		Company:         "Acme",
		Sector:          "Logiciel",
		Missions:        "Concevoir les API\nMaintenir le front, Participer aux revues",
		TechnicalSkills: "Go, React",
		SoftSkills:      "Rigueur; Curiosité",
		ExperienceLevel: "3 à 5 ans",
		Benefits:        "Télétravail, Mutuelle",
	}
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
