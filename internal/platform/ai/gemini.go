// Package ai implements the external evaluator collaborator: an HTTP client
// for the Gemini generative-language API that turns a symptom narrative into
// a validated diagnosis.Analysis.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mediscan/mediscan/internal/domain/diagnosis"
	"github.com/mediscan/mediscan/internal/platform/apperr"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// instructionPrompt is the fixed template sent ahead of the symptom text. The
// JSON shape it demands is the contract diagnosis.Analysis validates against.
const instructionPrompt = `You are an advanced medical diagnostic AI assistant. Your goal is to analyze patient symptoms and provide a preliminary diagnosis, severity assessment, and actionable advice.

IMPORTANT:
1. If symptoms indicate a life-threatening emergency (e.g., heart attack, stroke, severe bleeding, difficulty breathing), mark severity as "Emergency" and prioritize immediate medical attention in your response.
2. Be empathetic but professional.
3. Respond with a single structured JSON object.

Output JSON Format:
{
  "summary": "Brief clinical summary of the patient's condition.",
  "differential_diagnoses": [
    {
      "disease_name": "Name of condition",
      "confidence_percent": 85,
      "key_supporting_symptoms": ["symptom1", "symptom2"],
      "suggested_tests": ["test1", "test2"]
    }
  ],
  "severity": "Normal" | "Moderate" | "Severe" | "Emergency",
  "reason_for_classification": "Why this severity was chosen.",
  "patient_advice": {
    "steps": ["Step 1", "Step 2"],
    "monitoring": ["What to watch for"],
    "home_care": ["Home remedies if applicable"],
    "warning_signs": ["Signs to go to ER"]
  },
  "doctor_report": {
    "clinical_summary": "Technical summary for the doctor.",
    "differential_diagnoses_reasoning": "Reasoning across the differentials.",
    "recommended_tests": ["test1"],
    "urgency_level": "How urgently the patient should be seen.",
    "treatment_direction": "Initial treatment direction.",
    "red_flags": ["Red flag 1"]
  }
}`

type geminiRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeminiClient implements diagnosis.Evaluator against the Gemini API.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewGeminiClient builds a client for the given model (e.g. "gemini-2.5-flash").
// The timeout bounds each evaluation round trip; a timed-out call surfaces as
// an upstream error.
func NewGeminiClient(apiKey, model string, timeout time.Duration, log zerolog.Logger) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Evaluate sends the instruction prompt plus the symptom narrative and parses
// the reply into a validated analysis.
func (g *GeminiClient) Evaluate(ctx context.Context, symptoms string) (*diagnosis.Analysis, error) {
	userPrompt := fmt.Sprintf("Patient Symptoms: %s\n\nAnalyze these symptoms and provide the diagnosis in the specified JSON format.", symptoms)

	reqBody := geminiRequest{
		Contents: []content{{
			Parts: []part{{Text: instructionPrompt}, {Text: userPrompt}},
		}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not build evaluator request", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not build evaluator request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "evaluator call failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "evaluator call failed", err)
	}
	if resp.StatusCode != http.StatusOK {
		g.log.Error().Int("status", resp.StatusCode).Msg("evaluator returned non-200")
		return nil, apperr.Newf(apperr.Upstream, "evaluator returned status %d", resp.StatusCode)
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, apperr.Wrap(apperr.MalformedResponse, "evaluator reply was not valid JSON", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, apperr.New(apperr.MalformedResponse, "evaluator reply had no content")
	}

	return ParseAnalysis(gr.Candidates[0].Content.Parts[0].Text)
}

// ParseAnalysis strips any surrounding markdown fences from the evaluator
// text and decodes it into a validated analysis. Parse failures surface as
// malformed-response errors so operators can tell them from transport
// failures.
func ParseAnalysis(text string) (*diagnosis.Analysis, error) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	var analysis diagnosis.Analysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, apperr.Wrap(apperr.MalformedResponse, "evaluator reply was not valid JSON", err)
	}
	if err := analysis.Validate(); err != nil {
		return nil, err
	}
	return &analysis, nil
}
