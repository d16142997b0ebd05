package llm

import (
	"fmt"
	"strings"
)

const parsePromptTemplate = `You are a resume parsing service for a recruiting platform.
Extract structured data from the resume text below and return ONLY a JSON object.

The JSON object may contain these fields (omit any you cannot determine):
- "job_titles": array of the candidate's current or most recent job titles, most relevant first
- "suited_roles": array of {"role": string, "match_percent": number 0-100} objects ranking roles the candidate fits
- "expected_salary_range": {"min": integer, "max": integer} in the candidate's stated or inferred currency, annual
- "skills_detailed": array of {"name": string, "proficiency": "beginner"|"intermediate"|"advanced"|"expert", "category": string}
- "projects": array of {"title": string, "description": string, "url": string, "technologies": array of strings}
- "location": the candidate's city and country
- "phone": the candidate's phone number
- "summary": a 2-3 sentence professional summary in the third person
- "education": array of objects with "school", "degree", "field", "start_year", "end_year"
- "experiences": array of objects with "company", "title", "start_date", "end_date", "description"

Rules:
- Never invent facts that are not supported by the resume text.
- Only include suited_roles you can justify from the candidate's experience.
- Return the JSON object with no surrounding prose and no markdown fences.

Resume text:
---
%s
---`

// ParsePrompt builds the extraction prompt for one resume.
func ParsePrompt(resumeText string) string {
	return fmt.Sprintf(parsePromptTemplate, strings.TrimSpace(resumeText))
}
