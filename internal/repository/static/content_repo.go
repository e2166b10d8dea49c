package static

import (
	"context"

	"go-portfolio-site/internal/domain"
)

// OwnerEmail is the site owner's address. Contact messages are sent from and to it.
const OwnerEmail = "keanocliaso12@gmail.com"

type contentRepo struct{}

// NewContentRepository returns the compiled-in portfolio content.
func NewContentRepository() domain.ContentRepository {
	return &contentRepo{}
}

// GetPortfolio builds a fresh copy on every call so callers can never mutate shared content.
func (r *contentRepo) GetPortfolio(ctx context.Context) (*domain.Portfolio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := portfolio()
	return &p, nil
}

func portfolio() domain.Portfolio {
	return domain.Portfolio{
		Profile: domain.Profile{
			Name:       "Kean Ocliaso",
			Initials:   "KO",
			Headline:   "IT Graduate | Python & Android Developer | Aspiring Project Manager",
			Location:   "Surigao City, Philippines",
			Email:      OwnerEmail,
			Phone:      "+63 966 725 0875",
			LinkedIn:   "linkedin.com/in/keanocliaso",
			GitHub:     "github.com/KOM012",
			University: "Saint Paul University Surigao",
			Graduation: "April 2024",
			Intro: "As a graduating IT student at Saint Paul University Surigao with expertise in Python, Java, " +
				"and Android development, I combine technical proficiency with demonstrated leadership experience. " +
				"My background as Student Vice Governor and Club President has equipped me with strong project " +
				"management, team leadership, and strategic planning skills, making me uniquely positioned for roles " +
				"that bridge technology and management. Currently working on my thesis \"AquaSense-AI: Poolsafety " +
				"Utilizing Computer Vision and Artificial Intelligence.\"",
			Stats: []domain.Stat{
				{Value: "10+", Label: "Projects Completed"},
				{Value: "4.0", Label: "GPA Score"},
				{Value: "150+", Label: "Students Led"},
			},
		},
		Education: domain.Education{
			Degree:   "Bachelor of Science in Information Technology",
			School:   "Saint Paul University Surigao",
			Expected: "Expected Graduation: June 2024",
			GPA:      "4.0/4.0 (Dean's Lister All Semesters)",
			Coursework: []string{
				"Software Engineering", "Data Structures & Algorithms", "Mobile Application Development",
				"Database Management Systems", "Agile Project Management", "Cloud Computing",
				"Artificial Intelligence", "Web Development", "Network Security",
			},
			Thesis: "\"AquaSense-AI: Poolsafety Utilizing Computer Vision and Artificial Intelligence\" - " +
				"Developing an AI-powered system for pool safety monitoring using computer vision techniques.",
		},
		TechnicalSkills: []domain.SkillGroup{
			{
				Title: "Python Expertise",
				Skills: []string{
					"Django", "Flask", "FastAPI", "Pandas", "NumPy", "OpenCV", "TensorFlow",
					"Streamlit", "Automation", "Web Scraping", "Computer Vision",
				},
				Experience: "3 years academic + personal projects",
			},
			{
				Title: "Java & Android Dev",
				Skills: []string{
					"Java SE", "Android SDK", "Kotlin", "Room Database", "REST APIs", "Firebase",
					"Material Design", "MVVM", "Git", "XML Layouts",
				},
				Experience: "2 years academic projects",
			},
			{
				Title: "Web & Database",
				Skills: []string{
					"HTML/CSS", "JavaScript", "React", "Bootstrap", "MySQL", "PostgreSQL",
					"MongoDB", "Git", "Docker", "AWS Basics",
				},
				Experience: "Academic and personal projects",
			},
		},
		SoftSkills: []string{
			"Project Management", "Team Leadership", "Strategic Planning", "Public Speaking",
			"Event Planning", "Mentoring", "Budget Management", "Conflict Resolution",
			"Agile Methodologies", "Stakeholder Communication", "Problem Solving", "Time Management",
		},
		Leadership: []domain.Experience{
			{
				Role:         "Vice Governor | SPUS Supreme Student Government",
				Organization: "Saint Paul University Surigao",
				Period:       "June 2022 - Present",
				Highlights: []string{
					"Represented 3,000+ students in university governance and policy-making committees",
					"Managed student organization budgets and facilitated fund allocation",
					"Led the \"Digital Student Services Initiative\" to modernize student processes",
					"Coordinated between 20+ student organizations and university administration",
					"Organized student welfare programs and academic support initiatives",
					"Implemented feedback mechanisms that increased student satisfaction by 40%",
				},
				KeyAchievement: "Successfully advocated for improved campus Wi-Fi infrastructure",
			},
			{
				Role:   "President | SPUS Information Technology Society",
				Period: "January 2022 - Present",
				Highlights: []string{
					"Grew membership from 30 to 100+ active IT students within one year",
					"Organized 15+ technical workshops on Python, Android Development, and Web Technologies",
					"Led coding bootcamps and hackathons with 200+ total participants",
					"Established mentorship program pairing senior students with freshmen",
					"Collaborated with local tech companies for industry exposure sessions",
					"Managed club budget and secured sponsorships for major events",
				},
				KeyAchievement: "Increased member participation in tech competitions by 300%",
			},
		},
		Technical: []domain.Experience{
			{
				Role:         "Student Developer | SPUS IT Projects",
				Organization: "Surigao City",
				Period:       "January 2022 - Present",
				Highlights: []string{
					"Developed \"SPUS Event Manager\" - Python Django web app for campus event management",
					"Created \"Paulinian Portal\" Android app for student information access",
					"Built REST APIs for various academic department projects",
					"Assisted in migrating legacy student databases to modern systems",
					"Participated in Agile development processes for semester-long projects",
					"Implemented responsive web designs for mobile-friendly campus applications",
				},
				Technologies: []string{"Python", "Django", "Android", "Java", "MySQL", "JavaScript"},
			},
			{
				Role:   "Freelance Android Developer",
				Period: "June 2022 - Present",
				Highlights: []string{
					"Developed \"Surigao Guide\" - tourist information app for local visitors",
					"Created \"StudyTrack\" - student productivity app with assignment tracking",
					"Built custom Android applications for small local businesses",
					"Implemented clean architecture patterns (MVVM) in all projects",
					"Optimized app performance and reduced memory usage",
					"Provided technical support and maintenance for deployed applications",
				},
				Technologies: []string{"Android", "Kotlin", "Java", "Room Database", "Firebase"},
			},
		},
		Projects: []domain.Project{
			{
				Title:        "AquaSense-AI: Pool Safety System",
				Description:  "Thesis project using computer vision and AI to detect drowning incidents and pool safety violations",
				Status:       "Thesis Project",
				Tech:         []string{"Python", "OpenCV", "TensorFlow", "FastAPI", "React", "PostgreSQL"},
				Features:     []string{"Real-time drowning detection", "Lifeguard alert system", "Pool capacity monitoring", "Violation logging", "Web dashboard"},
				Achievements: "Faculty-approved thesis project, Pilot testing scheduled for 2024",
			},
			{
				Title:        "SPUS Event Management System",
				Description:  "Comprehensive web application for managing university events, registrations, and attendance",
				Status:       "Production",
				Tech:         []string{"Python", "Django", "JavaScript", "Bootstrap", "MySQL", "Chart.js"},
				Features:     []string{"Event creation & management", "Online registration", "QR code check-in", "Analytics dashboard", "Email notifications"},
				Achievements: "Adopted by Student Affairs Office, 50+ events managed",
			},
			{
				Title:        "Surigao Tourist Guide App",
				Description:  "Android application providing information about tourist spots, restaurants, and events in Surigao",
				Status:       "Published",
				Tech:         []string{"Android", "Kotlin", "Google Maps API", "Room Database", "Retrofit"},
				Features:     []string{"Interactive maps", "Offline content", "Event calendar", "Restaurant reviews", "Travel itineraries"},
				Achievements: "500+ downloads, Featured in local tourism office",
			},
			{
				Title:        "StudyTrack Student Planner",
				Description:  "Android productivity app for students with assignment tracking, schedule management, and grade calculator",
				Status:       "Published",
				Tech:         []string{"Android", "Java", "Room Database", "Material Design", "Notifications"},
				Features:     []string{"Assignment tracker", "Class schedule", "Grade calculator", "Study timer", "Progress analytics"},
				Achievements: "4.5 star rating, 1000+ downloads",
			},
			{
				Title:        "Inventory Management System",
				Description:  "Web-based inventory system for small businesses with barcode scanning and reporting",
				Status:       "Commercial",
				Tech:         []string{"Python", "Flask", "JavaScript", "SQLite", "Bootstrap"},
				Features:     []string{"Barcode generation", "Stock alerts", "Sales reports", "Supplier management", "Mobile responsive"},
				Achievements: "Implemented for 2 local businesses",
			},
		},
		Awards: []domain.Award{
			{Title: "Dean's Lister (All Semesters)", Year: "2020-2024", Organization: "Saint Paul University Surigao"},
			{Title: "Outstanding IT Student Award", Year: "2023", Organization: "SPUS College of Computer Studies"},
			{Title: "1st Place - University Hackathon", Year: "2023", Organization: "SPUS Tech Innovation Challenge"},
			{Title: "Leadership Excellence Award", Year: "2023", Organization: "SPUS Student Affairs Office"},
			{Title: "Best Mobile App Project", Year: "2022", Organization: "SPUS IT Department"},
			{Title: "Outstanding Student Leader", Year: "2022", Organization: "SPUS Supreme Student Government"},
			{Title: "Innovation Award", Year: "2022", Organization: "SPUS Research and Development"},
			{Title: "Academic Scholarship Grantee", Year: "2020-2024", Organization: "Saint Paul University Surigao"},
		},
		Certifications: []string{
			"Google IT Automation with Python Professional Certificate (Coursera, 2023)",
			"Android App Development Specialization (Coursera, 2022)",
			"Python for Everybody Specialization (Coursera, 2022)",
			"Agile Project Management (Google/Coursera, 2023)",
			"Introduction to Computer Vision with OpenCV (Udemy, 2023)",
			"Web Development Bootcamp (FreeCodeCamp, 2022)",
			"Git and GitHub Complete Masterclass (Udemy, 2022)",
			"Database Management Essentials (Coursera, 2021)",
		},
		Career: domain.CareerInterests{
			Status: "Open to Opportunities (Starting June 2024)",
			PreferredRoles: []string{
				"Junior Software Developer", "Android Developer", "Python Developer",
				"Project Management Trainee", "Full-Stack Developer",
			},
			PreferredLocation: "Surigao, Cebu or Remote",
			Availability:      "Full-time from June 2024",
		},
		QuickLinks: []domain.Link{
			{Label: "Download Resume (PDF)", URL: "#"},
			{Label: "Email Me", URL: "mailto:" + OwnerEmail},
			{Label: "LinkedIn Profile", URL: "https://linkedin.com/in/keanocliaso"},
			{Label: "GitHub Portfolio", URL: "https://github.com/KOM012"},
		},
		Proficiencies: []domain.Proficiency{
			{Skill: "Python", Level: 0.85},
			{Skill: "Android Development", Level: 0.60},
			{Skill: "Java Programming", Level: 0.70},
			{Skill: "Web Development", Level: 0.75},
			{Skill: "Project Management", Level: 0.80},
		},
		BuiltWith:    []string{"Go with gin", "Server-rendered HTML templates"},
		SiteFeatures: []string{"Responsive design", "Contact form with email integration", "Interactive project showcases", "Mobile-friendly layout"},
		LastUpdated:  "February 2026",
	}
}
