package summarize

import (
	"fmt"
	"strings"

	"github.com/docbrief/docbrief/internal/domain/entities"
)

// rolePrompts holds one fixed instruction block per reader persona.
var rolePrompts = map[entities.UserRole]string{
	entities.RoleStudent: `You are summarizing for a STUDENT. Focus on:
- Clear explanations of concepts and terminology
- Learning objectives and educational value
- Simplified language without losing accuracy
- Examples and applications for better understanding
- Study-friendly structure`,

	entities.RoleResearcher: `You are summarizing for a RESEARCHER. Focus on:
- Methodological details and research design
- Novel findings and contributions to the field
- Statistical significance and data analysis
- Theoretical frameworks and implications
- References to related work and future research directions`,

	entities.RoleProfessional: `You are summarizing for a PROFESSIONAL. Focus on:
- Practical applications and business value
- Implementation considerations and feasibility
- ROI and cost-benefit analysis
- Strategic implications and competitive advantage
- Actionable recommendations and next steps`,
}

// contextPrompts holds one fixed instruction block per audience framing.
var contextPrompts = map[entities.ContextType]string{
	entities.ContextExecutive: `You are summarizing for C-level executives. Focus on:
- High-level strategic insights and business impact
- Key decisions and recommendations
- Financial implications and ROI
- Risk assessment and mitigation strategies
- Actionable next steps for leadership`,

	entities.ContextStudent: `You are summarizing for students. Focus on:
- Clear explanations of key concepts
- Learning objectives and takeaways
- Important definitions and terminology
- Examples and practical applications
- Study tips and important points to remember`,

	entities.ContextAnalyst: `You are summarizing for data analysts. Focus on:
- Statistical findings and data trends
- Methodology and approach
- Key metrics and quantitative insights
- Patterns, correlations, and anomalies
- Data-driven recommendations`,

	entities.ContextGeneral: `Provide a clear, comprehensive summary that:
- Captures the main points and key information
- Is easy to understand for a general audience
- Highlights important facts and conclusions
- Maintains objectivity and clarity`,
}

// refinePrompts maps refinement actions to instruction templates. The
// placeholder receives the current summary content, never the original
// document.
var refinePrompts = map[entities.RefineAction]string{
	entities.ActionShorten: `Make this summary significantly shorter (50%% reduction) while keeping the most critical information:

%s

Provide only the shortened version.`,

	entities.ActionShorter: `Make this summary significantly shorter (50%% reduction) while keeping the most critical information:

%s

Provide only the shortened version.`,

	entities.ActionRefine: `Improve this summary by:
- Enhancing clarity
- Removing redundancy
- Making it more professional
- Keeping the same length

Original summary:
%s

Provide the refined version.`,

	entities.ActionDetailed: `Expand this summary with more details, examples, and explanations:

%s

Detailed version:`,

	entities.ActionFocusMethods: `Rewrite this summary with heavy focus on methodology, approach, and technical details:

%s

Method-focused version:`,

	entities.ActionFocusResults: `Rewrite this summary emphasizing results, outcomes, and key findings:

%s

Results-focused version:`,
}

const customFocusPrompt = `Rewrite this summary with focus on: %s

%s

Focused version:`

// buildKeywordPrompt asks for a delimiter-separated keyword list.
func buildKeywordPrompt(text string, n int) string {
	if len(text) > keywordPromptTextLimit {
		text = text[:keywordPromptTextLimit]
	}
	return fmt.Sprintf(`Extract the %d most important keywords or key phrases from this document.
Return ONLY a comma-separated list, no explanations.

Document:
%s

Keywords:`, n, text)
}

// buildSummaryPrompt combines the role and context instruction blocks,
// the top keywords, and the document text into one structured request.
func buildSummaryPrompt(text string, contextType entities.ContextType, userRole entities.UserRole, keywords []string, maxTextLen int) string {
	roleInstruction, ok := rolePrompts[userRole]
	if !ok {
		roleInstruction = rolePrompts[entities.RoleProfessional]
	}
	contextInstruction, ok := contextPrompts[contextType]
	if !ok {
		contextInstruction = contextPrompts[entities.ContextGeneral]
	}

	if len(keywords) > 10 {
		keywords = keywords[:10]
	}

	if maxTextLen > 0 && len(text) > maxTextLen {
		text = text[:maxTextLen]
	}

	return fmt.Sprintf(`%s

%s

Key terms to focus on: %s

Analyze this document and provide a structured summary:

1. OVERVIEW: Comprehensive summary (3-4 paragraphs)
2. KEY INSIGHTS: Most important findings (4-6 bullet points)
3. RISKS & CHALLENGES: Potential issues (if applicable)
4. RECOMMENDATIONS: Actionable next steps (if applicable)

Document:
%s

Format as:
[OVERVIEW]
...

[KEY INSIGHTS]
...

[RISKS]
...

[RECOMMENDATIONS]
...`, roleInstruction, contextInstruction, strings.Join(keywords, ", "), text)
}

// buildRefinePrompt maps an action (and optional focus area) to its
// instruction template.
func buildRefinePrompt(action entities.RefineAction, content, focusArea string) string {
	if focusArea != "" {
		return fmt.Sprintf(customFocusPrompt, focusArea, content)
	}
	template, ok := refinePrompts[action]
	if !ok {
		template = refinePrompts[entities.ActionShorten]
	}
	return fmt.Sprintf(template, content)
}
