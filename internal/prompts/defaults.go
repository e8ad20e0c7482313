package prompts

// Template names used by the tool variants
const (
	SearchBrief        = "search_brief"
	SearchNormal       = "search_normal"
	SearchDetailed     = "search_detailed"
	Documentation      = "documentation"
	FindAPIs           = "find_apis"
	CheckDeprecated    = "check_deprecated"
	DeepResearchSystem = "deep_research_system"
	DeepResearchUser   = "deep_research_user"
)

// defaultTemplates are the built-in prompt templates. Override files can
// replace individual entries by name.
var defaultTemplates = map[string]string{
	SearchBrief: `Provide a brief, concise answer to: {{.Query}}`,

	SearchNormal: `Provide a clear, balanced answer to: {{.Query}}. Include key points and relevant context.`,

	SearchDetailed: `Provide a comprehensive, detailed analysis of: {{.Query}}. Include relevant examples, context, and supporting information where applicable.`,

	Documentation: `Provide comprehensive documentation and usage examples for {{.Query}}. {{if .Context}}Focus on: {{.Context}}. {{end}}Include:
1. Basic overview and purpose
2. Key features and capabilities
3. Installation/setup if applicable
4. Common usage examples
5. Best practices
6. Common pitfalls to avoid
7. Links to official documentation if available`,

	FindAPIs: `Find and evaluate APIs that could be used for: {{.Requirement}}. {{if .Context}}Context: {{.Context}}. {{end}}For each API, provide:
1. Name and brief description
2. Key features and capabilities
3. Pricing model (if available)
4. Integration complexity
5. Documentation quality
6. Community support and popularity
7. Any potential limitations or concerns
8. Code example of basic usage`,

	CheckDeprecated: `Analyze this code for deprecated features or patterns{{if .Technology}} in {{.Technology}}{{end}}:

{{.Code}}

Please provide:
1. Identification of any deprecated features, methods, or patterns
2. Current recommended alternatives
3. Migration steps if applicable
4. Impact of the deprecation
5. Timeline of deprecation if known
6. Code examples showing how to update to current best practices`,

	DeepResearchSystem: `You are a Deep Research agent capable of conducting comprehensive research by performing multiple searches. Your goal is to create an in-depth report that combines information from hundreds of sources, analyzes contradictions, and presents a complete picture of the topic.`,

	DeepResearchUser: `Conduct a deep research investigation on: {{.Topic}}

Please approach this as an expert researcher would, conducting multiple searches and analyzing diverse sources to provide comprehensive information. Your research should be {{.Depth}}{{if .Focus}}, focused on {{.Focus}}{{end}}{{if .TimeConstraint}}. Consider the time period: {{.TimeConstraint}}{{end}}

When preparing your report:
1. Start with an executive summary of key findings
2. Organize information in a logical structure with headings and subheadings
3. Include critical analysis and multiple perspectives
4. Cite all sources using {{.CitationStyle}} format
5. Prioritize recent, peer-reviewed, and authoritative sources
6. Identify any gaps in existing research
7. Conclude with practical implications and future directions`,
}
