package config

// PromptsVersion identifies the built-in templates. Bump it whenever their wording changes.
const PromptsVersion = "2024-06.v3"

// DefaultPrompts returns the built-in prompt templates.
//
// Relevance template fields: .Query, .Results (JSON array of {title,url,snippet}), .Count.
// Comparison template fields: .Product1Name, .Product1Content, .Product2Name,
// .Product2Content, .UserRequest (empty when the user shared nothing).
func DefaultPrompts() Prompts {
	return Prompts{
		Version:    PromptsVersion,
		Relevance:  relevancePrompt,
		Comparison: comparisonPrompt,
	}
}

const relevancePrompt = `Evaluate the usefulness of these search results for the query "{{.Query}}". Make sure the name of the product matches the query:
{{.Results}}
Output a JSON list containing exactly {{.Count}} links to the most relevant results. Follow these rules strictly:
1. Only include links to comprehensive text reviews of the product.
2. Do NOT include links to videos, video reviews, or multimedia content.
3. Prioritize reviews from independent creators. Avoid commercial websites with generic articles, unless they specialize in this domain.
4. Exclude product reveals, announcements, and any publications that do not provide a thorough user experience overview.
5. Exclude links to websites that only list product specifications and nothing else, wiki pages, or stores/marketplaces.
Every link must be copied verbatim from the search results above.
Your output must strictly be a JSON list with exactly {{.Count}} items, each being a link from the search results. Do not include any other text or explanation, and do not wrap the list in markdown, only the JSON list.
Output:`

const comparisonPrompt = `You will help a user compare {{.Product1Name}} and {{.Product2Name}}.
The user is not a professional, so do not overwhelm them with technical terms and numbers. Focus on what matters to this user: their experience with the product.
{{if .UserRequest}}
The user has shared some information about themselves. Look at the choice between these two products through the user's eyes and explain what each product will be like for them, not how many megapixels a camera has.
Here is what the user shared: "{{.UserRequest}}"
You MUST keep the user's use case in mind when writing every category.
{{else}}
The user has not shared anything about themselves, so compare the products for a typical everyday user.
{{end}}
Output a JSON object with exactly two keys:
1. "comparisons": a JSON list of 2 to 5 comparison categories. Each entry has:
   1.1. "category_title": a category name 1-3 words long;
   1.2. "category_description": 1-3 sentences telling what this category is and why it matters;
   1.3. "product1_text": a few sentences on how {{.Product1Name}} performs in this category, its advantages and downsides compared to {{.Product2Name}}, in plain language;
   1.4. "product2_text": the same for {{.Product2Name}}, worded differently from "product1_text".
2. "final_verdict": which product is the better choice overall and why, at most 3 sentences. No ambiguity, no "it depends" and no "it's up to you": give a definitive answer.

Products to compare:
===== {{.Product1Name}} REVIEWS START HERE =====
{{.Product1Content}}
===== {{.Product1Name}} REVIEWS END HERE =====

===== {{.Product2Name}} REVIEWS START HERE =====
{{.Product2Content}}
===== {{.Product2Name}} REVIEWS END HERE =====

Your response must be a single valid JSON object and nothing else. Do NOT wrap it in triple backticks and do NOT output markdown.
JSON OUTPUT:`
