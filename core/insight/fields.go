package insight

// CareerField is a named occupational category with the competency keywords
// it requires. Versioned reference data shipped with the engine, not a
// database table.
type CareerField struct {
	Name     string
	Keywords []string
}

// CareerFields is the field catalog, in declaration order. Order matters:
// the "first maximum wins" tie-break on the top field relies on it, so this
// is deliberately a slice and not a map.
var CareerFields = []CareerField{
	{Name: "Software Development", Keywords: []string{"Python", "Java", "C++", "JavaScript", "React", "Node.js", "Software Engineering", "Data Structures", "Algorithms"}},
	{Name: "Data Science", Keywords: []string{"Python", "SQL", "Data Analysis", "Machine Learning", "Statistics", "Calculus", "Linear Algebra"}},
	{Name: "AI/ML", Keywords: []string{"Python", "Machine Learning", "Artificial Intelligence", "Calculus", "Linear Algebra", "Data Analysis"}},
	{Name: "Cloud Computing", Keywords: []string{"AWS", "Docker", "Kubernetes", "Computer Networks", "Operating Systems", "Linux"}},
	{Name: "Cybersecurity", Keywords: []string{"Cybersecurity", "Networks", "Cryptography", "Linux", "Operating Systems"}},
	{Name: "Web Development", Keywords: []string{"JavaScript", "React", "Node.js", "HTML", "CSS", "Web Development"}},
	{Name: "DevOps", Keywords: []string{"Docker", "Kubernetes", "AWS", "Linux", "Scripting", "CI/CD"}},
}
