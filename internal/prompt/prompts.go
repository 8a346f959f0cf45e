// Package prompt holds the instruction templates sent to the AI provider.
package prompt

import (
	"fmt"
	"strings"
)

// FeedbackFormat describes the JSON object the model must return.
const FeedbackFormat = `
interface Feedback {
  overallScore: number; // 0-100
  matchScore?: number; // 0-100, ONLY when a job description is provided
  candidateInfo?: {
    // ALWAYS extract this information from the CV
    name?: string;
    email?: string;
    phone?: string;
    currentTitle?: string;
  };
  ATS: {
    score: number;
    tips: { type: "good" | "improve"; tip: string; }[];
  };
  jobMatch?: {
    // ONLY include this section when a job description is provided
    matchingSkills: { skill: string; evidence: string; }[];
    missingSkills: {
      skill: string;
      importance: "critical" | "important" | "nice-to-have";
      suggestion: string;
    }[];
    matchingExperience: {
      requirement: string;
      match: string;
      matchLevel: "excellent" | "good" | "partial" | "none";
    }[]; // analyze ALL experience requirements
    overallAssessment: string; // 2-3 sentences: is this a good fit and why
  };
  toneAndStyle: {
    score: number;
    tips: { type: "good" | "improve"; tip: string; explanation: string; }[];
  };
  content: {
    score: number;
    tips: { type: "good" | "improve"; tip: string; explanation: string; }[];
  };
  structure: {
    score: number;
    tips: { type: "good" | "improve"; tip: string; explanation: string; }[];
  };
  skills: {
    score: number;
    tips: { type: "good" | "improve"; tip: string; explanation: string; }[];
  };
}`

const englishOnly = `**LANGUAGE REQUIREMENT:**
Write ALL feedback, tips, explanations and assessments in ENGLISH ONLY, whatever the language of the CV or the job description.`

// GeneralInstructions asks for a résumé critique that is not tied to a job.
func GeneralInstructions() string {
	return fmt.Sprintf(`You are an expert in resume analysis.

**CRITICAL:**
1. EXTRACT candidate information (name, email, phone, current title) from the CV.
2. Include it in the candidateInfo section of the response.

Please analyze and rate this resume generally. Do not focus on any specific job.
Identify the candidate's strongest skills, experience level and potential job titles.
Be thorough and detailed. Do NOT include matchScore or jobMatch.

%s

Provide the feedback using the following format: %s
Return the analysis as a single JSON object, without any other text and without backticks or markdown.
Do not include any other text or comments.`, englishOnly, FeedbackFormat)
}

// JobMatchInstructions asks for a critique scored against a specific job.
func JobMatchInstructions(jobTitle, jobDescription string) string {
	return fmt.Sprintf(`You are an expert in ATS (Applicant Tracking System) and resume analysis with 10+ years of recruiting experience.

**PRIMARY TASK: DETAILED JOB MATCH ANALYSIS**

You are analyzing this resume for the position: **%s**

Job Description:
"""
%s
"""

**CRITICAL INSTRUCTIONS:**

1. EXTRACT CANDIDATE INFORMATION
   - Full name, email address, phone number and current job title when visible.
   - Include them in the candidateInfo section.

2. READ THE ENTIRE JOB DESCRIPTION CAREFULLY
   - Extract ALL required skills, experience requirements and qualifications.
   - Note "must-have" versus "nice-to-have" requirements.

3. ANALYZE THE RESUME AGAINST EACH REQUIREMENT
   - For EACH skill: does the candidate have it, and where is the evidence in the CV?
   - For EACH experience requirement: does the candidate meet it? Give specific examples.
   - Calculate a matchScore (0-100) for how well the CV matches the job description.

4. BE SPECIFIC IN THE jobMatch SECTION
   - matchingSkills: EVERY skill from the job description the candidate has, with evidence.
   - missingSkills: EVERY required skill the candidate lacks, with importance and a suggestion.
   - matchingExperience: EACH experience requirement compared with the candidate's experience.
   - overallAssessment: a clear verdict on fit.

5. GENERAL RESUME ANALYSIS
   - Rate ATS compatibility, tone, content, structure and skills presentation.
   - Do not be afraid to give low scores when deserved. Provide actionable tips.

6. OUTPUT FORMAT
   - Return ONLY valid JSON matching this format: %s
   - NO markdown, NO backticks, NO extra text.
   - ALWAYS include both jobMatch and matchScore.

**SCORING GUIDELINES:**
- matchScore 90-100: excellent fit, meets all or most requirements
- matchScore 70-89: good fit, minor gaps
- matchScore 50-69: moderate fit, significant gaps in key areas
- matchScore 30-49: poor fit, many missing requirements
- matchScore 0-29: not qualified

%s

Be honest and specific.`, jobTitle, jobDescription, FeedbackFormat, englishOnly)
}

// JobSuggestionPrompt asks the model to pick the three best jobs by id.
func JobSuggestionPrompt(cvSkills, jobsJSON string) string {
	return fmt.Sprintf(`You are an AI recruitment specialist.
Here are the skills of a candidate:
---CV SKILLS---
%s
---
Here is a list of real jobs:
---JOBS---
%s
---
Based on the candidate's skills, select the 3 most suitable jobs.
Return ONE JSON ARRAY containing only the IDs of those 3 jobs.
Example: ["job-id-1", "job-id-2", "job-id-3"]`, cvSkills, jobsJSON)
}

type CoverLetterInput struct {
	CandidateName     string
	CandidateEmail    string
	CandidatePhone    string
	CurrentTitle      string
	CompanyName       string
	JobTitle          string
	JobDescription    string
	MatchScore        *float64
	MatchedSkills     string
	MissingSkills     string
	OverallAssessment string
	OverallScore      float64
	ATSScore          float64
}

func CoverLetterPrompt(in CoverLetterInput) string {
	var b strings.Builder
	b.WriteString("You are a professional career coach writing a cover letter.\n\n")
	b.WriteString("Write a professional, compelling cover letter for the following:\n\n")

	b.WriteString("**CANDIDATE INFORMATION:**\n")
	fmt.Fprintf(&b, "- Name: %s\n- Email: %s\n- Phone: %s\n", in.CandidateName, in.CandidateEmail, in.CandidatePhone)
	if in.CurrentTitle != "" {
		fmt.Fprintf(&b, "- Current Role: %s\n", in.CurrentTitle)
	}

	b.WriteString("\n**POSITION APPLYING FOR:**\n")
	fmt.Fprintf(&b, "- Company Name: %s\n- Job Title: %s\n", in.CompanyName, in.JobTitle)
	if in.JobDescription != "" {
		fmt.Fprintf(&b, "- Job Description: %s\n", in.JobDescription)
	}

	b.WriteString("\n**CANDIDATE'S QUALIFICATIONS:**\n")
	if in.MatchScore != nil {
		fmt.Fprintf(&b, "Match Score: %g/100\n", *in.MatchScore)
	}
	fmt.Fprintf(&b, "\nThe candidate has the following strengths based on their CV analysis:\n%s\n", in.MatchedSkills)
	if in.MissingSkills != "" {
		fmt.Fprintf(&b, "\nAreas the candidate is working to improve:\n%s\n", in.MissingSkills)
	}
	if in.OverallAssessment != "" {
		fmt.Fprintf(&b, "\nOverall Job Fit: %s\n", in.OverallAssessment)
	}
	fmt.Fprintf(&b, "\nOverall CV Score: %g/100\nATS Score: %g/100\n", in.OverallScore, in.ATSScore)

	b.WriteString(`
**REQUIREMENTS:**
1. Use proper business letter format: the candidate's contact information at the top, the date,
   a hiring manager address placeholder, a professional greeting and a professional closing.
2. Write in a professional but warm tone.
3. Highlight the matching skills prominently with specific examples.
4. Address areas to improve subtly by showing eagerness to learn and grow.
5. Show genuine enthusiasm for the role and company.
6. Keep the body concise (250-350 words).
7. Make it personal and authentic, not generic.
8. Reference the candidate's current role if applicable.

**IMPORTANT: Write the cover letter in ENGLISH ONLY**, even if the company name or job title is in another language.

Format the letter as:
[Candidate Name]
[Email] | [Phone]

[Date]

[Company Name]
[Address - to be filled]

Dear Hiring Manager,

[Body paragraphs]

Sincerely,
[Candidate Name]`)
	return b.String()
}

// ResumeChatPrompt frames a user question about their own résumé.
func ResumeChatPrompt(context, resumeText, userMessage string) string {
	fullText := ""
	if strings.TrimSpace(resumeText) != "" {
		fullText = "Resume Full Text:\n" + resumeText + "\n"
	}
	return strings.TrimSpace(fmt.Sprintf(`You are an expert CV/Resume consultant and career advisor.
Your goal is to assist the user specifically with their Resume/CV.

**CRITICAL INSTRUCTION**:
1. You MUST only answer questions directly related to the provided CV, resume writing, career advice, or job interview preparation based on this CV.
2. If the user asks about unrelated topics, politely refuse and redirect them to discuss the CV.
3. First, analyze the "Resume Full Text" below to understand the candidate's background, skills, and experience.
4. Use the "Context about the resume" (scores, tips) to support your advice.
5. Tailor your answer to THIS candidate, e.g. "Based on your experience at [Company]..." or "Since you have skills in [Skill]...".

Context about the resume:
%s

%s
User Question: %s

Response Guidelines:
- Be helpful, specific, and actionable.
- If suggesting improvements, give concrete examples based on the actual CV content.
- Be professional but friendly.

**IMPORTANT: Answer in ENGLISH ONLY, regardless of the question's language.**`, context, fullText, userMessage))
}
