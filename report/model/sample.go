package model

// Sample returns the fixed analysis shown for every upload. The file name is
// the only field taken from the caller.
func Sample(fileName string) AnalysisReport {
	return AnalysisReport{
		Score:    85,
		FileName: fileName,
		DetailedAnalysis: DetailedAnalysis{
			Readability: FeedbackSection{
				Score: 88,
				Feedback: []string{
					"Clear section headings make the resume easy to scan.",
					"Bullet points are concise and action-oriented.",
					"Consistent date formatting across all roles.",
					"Consider shortening the professional summary to three lines.",
				},
			},
			Keywords: KeywordSection{
				Score:   75,
				Found:   []string{"project management", "agile", "stakeholder communication", "data analysis"},
				Missing: []string{"scrum", "budget planning", "risk assessment"},
			},
			Experience: FeedbackSection{
				Score: 82,
				Feedback: []string{
					"Roles are listed in reverse chronological order.",
					"Most bullet points describe responsibilities rather than results.",
					"Add team sizes and scope to leadership roles.",
				},
			},
			Education: FeedbackSection{
				Score: 90,
				Feedback: []string{
					"Degree and institution are clearly stated.",
					"Relevant certifications are listed separately.",
				},
			},
		},
		SoftSkills: []string{
			"Communication",
			"Leadership",
			"Problem Solving",
			"Teamwork",
			"Adaptability",
			"Time Management",
			"Critical Thinking",
		},
		HardSkills: []string{
			"Project Management",
			"Data Analysis",
			"SQL",
			"Microsoft Excel",
			"Jira",
			"Tableau",
			"Python",
		},
		Suggestions: Suggestions{
			Critical: []string{
				"Add quantifiable results to at least half of your bullet points.",
				"Include the missing keywords scrum, budget planning and risk assessment.",
				"Remove tables and text boxes that ATS parsers cannot read.",
			},
			Recommended: []string{
				"Start every bullet point with a strong action verb.",
				"Tailor the professional summary to the target role.",
				"List tools and technologies in a dedicated skills section.",
			},
			Optional: []string{
				"Add a link to your LinkedIn profile.",
				"Mention volunteer work that shows leadership.",
				"Use a single, standard font throughout the document.",
			},
		},
		SemanticAnalysis: SemanticAnalysis{
			MeasurableAchievements: 4,
			SkillsEfficiencyRatio:  0.72,
			ImpactVerbs:            []string{"Led", "Delivered", "Improved", "Coordinated"},
			IndustryKeywords:       []string{"Agile", "KPI", "Cross-functional", "Roadmap"},
		},
	}
}
