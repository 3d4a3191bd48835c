package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"hireflow/internal/job"
)

// skillLexicon is the vocabulary the heuristic provider scans CVs for.
var skillLexicon = []string{
	"go", "golang", "python", "java", "typescript", "javascript", "sql",
	"postgresql", "redis", "kubernetes", "docker", "aws", "gcp", "terraform",
	"react", "grpc", "kafka", "linux", "git", "ci/cd",
}

// HeuristicProvider scores CVs with keyword overlap. It is deterministic and
// needs no credentials, which makes it the default in development and the
// baseline the paid providers are compared against.
type HeuristicProvider struct{}

func NewHeuristicProvider() *HeuristicProvider {
	return &HeuristicProvider{}
}

func (p *HeuristicProvider) AnalyzeCV(ctx context.Context, params AnalyzeCVParams) (*CVResult, error) {
	text := strings.ToLower(params.CVText)
	if strings.TrimSpace(text) == "" {
		return nil, ErrUnreadableCV
	}

	var skills []string
	for _, skill := range skillLexicon {
		if strings.Contains(text, skill) {
			skills = append(skills, skill)
		}
	}

	score := len(skills) * 5
	if params.Job != nil {
		score += overlapScore(text, params.Job)
	}
	if score > 100 {
		score = 100
	}

	summary := fmt.Sprintf("%s: %d recognized skills", params.CandidateName, len(skills))
	if params.Job != nil {
		summary = fmt.Sprintf("%s scored against %q", summary, params.Job.Title)
	}

	return &CVResult{
		Summary: summary,
		Score:   score,
		Skills:  skills,
	}, nil
}

func (p *HeuristicProvider) MatchCandidates(ctx context.Context, params MatchParams) ([]CandidateMatch, error) {
	explanation := "ranked by stored analysis score"
	if params.Job != nil {
		explanation = fmt.Sprintf("skill overlap with %q", params.Job.Title)
	}

	matches := make([]CandidateMatch, 0, len(params.Candidates))
	for _, cand := range params.Candidates {
		score := float64(cand.Score)
		if params.Job != nil {
			score += float64(overlapScore(strings.ToLower(cand.Skills), params.Job))
		}
		if score > 100 {
			score = 100
		}
		matches = append(matches, CandidateMatch{
			AnalysisID:    cand.ID,
			CandidateName: cand.CandidateName,
			Score:         score,
			Explanation:   explanation,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if params.MaxResults > 0 && len(matches) > params.MaxResults {
		matches = matches[:params.MaxResults]
	}
	return matches, nil
}

// overlapScore counts lexicon terms shared between the CV text and the job
// description, 10 points per shared term.
func overlapScore(cvText string, j *job.Job) int {
	desc := strings.ToLower(j.Title + " " + j.Description)
	score := 0
	for _, skill := range skillLexicon {
		if strings.Contains(desc, skill) && strings.Contains(cvText, skill) {
			score += 10
		}
	}
	return score
}
