package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fiche-backend/fiche/render"
	"fiche-backend/internal/extract"
	"fiche-backend/internal/fiches"
)

const sampleContent = `Le poste
Acme recrute un Développeur Full-Stack pour renforcer son équipe produit.

Missions principales
- Concevoir les API & les services
- Maintenir le front <React>

Profil recherché
3 à 5 ans d'expérience.`

func main() {
	outDir := flag.String("out", "./out", "output directory for the generated DOCX")
	templatePath := flag.String("template", "./template.docx", "DOCX template; the fallback encoder is used when absent")
	flag.Parse()

	meta := render.Meta{
		Title:   "Développeur Full-Stack",
		Company: "Acme",
		Sector:  "Logiciel",
		Date:    time.Now(),
	}

	result := render.New(*templatePath).Render(sampleContent, meta)
	if result.TemplateErr != nil {
		fmt.Fprintf(os.Stderr, "template failed, used fallback: %v\n", result.TemplateErr)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}
	name := fiches.Filename(meta.Title, render.Extension, meta.Date)
	outPath := filepath.Join(*outDir, name)
	if err := os.WriteFile(outPath, result.Data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	if err := validateRendered(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "render validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote %s (%s, %d bytes)\n", outPath, result.Source, len(result.Data))
}

func validateRendered(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text, err := extract.ExtractTextFromBytes(context.Background(), data, fiches.ContentTypeFor(path), filepath.Base(path))
	if err != nil {
		return err
	}
	for _, want := range []string{"Missions principales", "Maintenir le front <React>"} {
		if !strings.Contains(text, want) {
			return fmt.Errorf("rendered text missing %q", want)
		}
	}
	return nil
}
