package match

import "strings"

// Synonyms is a symmetric equivalence index over domain terms. Inserting
// a group registers every member as a key pointing to the full group,
// itself included. The table is built once and never mutated afterwards.
type Synonyms struct {
	groups map[string]map[string]bool
}

// NewSynonyms builds the default table of language, framework, database,
// cloud and role-category aliases.
func NewSynonyms() *Synonyms {
	s := &Synonyms{groups: make(map[string]map[string]bool)}

	// Programming languages
	s.add("javascript", "js", "ecmascript", "es6", "es2015")
	s.add("typescript", "ts")
	s.add("python", "py", "python3")
	s.add("java", "jdk", "jre", "j2ee", "jakarta")
	s.add("csharp", "c#", ".net", "dotnet")
	s.add("cplusplus", "c++", "cpp")
	s.add("golang", "go")
	s.add("ruby", "rails", "ruby on rails", "ror")
	// Frameworks
	s.add("react", "reactjs", "react.js")
	s.add("angular", "angularjs", "angular.js")
	s.add("vue", "vuejs", "vue.js")
	s.add("node", "nodejs", "node.js")
	s.add("spring", "spring boot", "springboot")
	s.add("django", "python django")
	s.add("express", "expressjs", "express.js")
	// Databases
	s.add("sql", "mysql", "postgresql", "postgres", "mssql", "oracle")
	s.add("nosql", "mongodb", "mongo", "cassandra", "dynamodb", "redis")
	// Cloud / DevOps
	s.add("aws", "amazon web services", "ec2", "s3", "lambda")
	s.add("azure", "microsoft azure")
	s.add("gcp", "google cloud", "google cloud platform")
	s.add("docker", "containers", "containerization")
	s.add("kubernetes", "k8s")
	s.add("ci/cd", "cicd", "continuous integration", "jenkins", "github actions")
	// General role terms
	s.add("frontend", "front-end", "front end", "ui", "user interface")
	s.add("backend", "back-end", "back end", "server-side")
	s.add("fullstack", "full-stack", "full stack")
	s.add("api", "rest", "restful", "rest api", "graphql")
	s.add("agile", "scrum", "kanban")
	s.add("machine learning", "ml", "ai", "artificial intelligence", "deep learning")
	s.add("data science", "data analysis", "analytics", "data analyst")

	return s
}

func (s *Synonyms) add(terms ...string) {
	for _, t := range terms {
		key := strings.ToLower(t)
		group, ok := s.groups[key]
		if !ok {
			group = make(map[string]bool, len(terms))
			s.groups[key] = group
		}
		for _, other := range terms {
			group[strings.ToLower(other)] = true
		}
	}
}

// AreSynonyms reports whether a and b belong to the same group. Both
// directions are checked so an asymmetrically registered pair still
// resolves.
func (s *Synonyms) AreSynonyms(a, b string) bool {
	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	if group, ok := s.groups[la]; ok && group[lb] {
		return true
	}
	group, ok := s.groups[lb]
	return ok && group[la]
}
