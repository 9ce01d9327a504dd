// Package seed provides the deterministic mock collections the dashboard
// starts with.
package seed

import (
	"fmt"
	"math"
	"time"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

// Epoch anchors every fixture timestamp so repeated loads are identical.
var Epoch = time.Date(2024, time.June, 3, 8, 0, 0, 0, time.UTC)

// Dates are the month labels available to time travel, oldest first.
var Dates = []string{
	"2023-09", "2023-10", "2023-11", "2023-12", "2024-01",
	"2024-02", "2024-03", "2024-04", "2024-05", "2024-06",
}

// Fixtures returns a fresh copy of the mock data set.
func Fixtures() models.SeedData {
	schools := schools()
	students := students()
	snaps := snapshots(schools, students)
	for i := range students {
		students[i].PerformanceHistory = History(students[i].ID, snaps)
	}
	return models.SeedData{
		Districts: districts(),
		Schools:   schools,
		Teachers:  teachers(),
		Students:  students,
		Skills:    skills(),
		Insights:  insights(),
		Dates:     append([]string(nil), Dates...),
		Snapshots: snaps,
		Goals:     goals(),
		Activity:  activity(),
	}
}

func districts() []models.District {
	return []models.District{
		{ID: "district-1", Name: "North Valley Unified", Status: models.DistrictStatusGood},
		{ID: "district-2", Name: "Riverside County Schools", Status: models.DistrictStatusWarning},
	}
}

func schools() []models.School {
	return []models.School{
		{
			ID: "s1", Name: "Lincoln Elementary", DistrictID: "district-1",
			Principal: "Dr. Maria Rivera", PrincipalEmail: "m.rivera@northvalley.k12.us",
			StudentCount: 420, TeacherCount: 28, Performance: 87, Attendance: 95.2,
			Status: models.DistrictStatusGood,
			Goals: &models.SchoolGoals{
				Reading:            models.GoalProgress{Current: 78, Target: 85},
				Math:               models.GoalProgress{Current: 72, Target: 80},
				Attendance:         models.GoalProgress{Current: 95.2, Target: 96},
				TutoringEngagement: models.GoalProgress{Current: 64, Target: 75},
			},
			AISummary: &models.AISummary{
				Headline: "Reading gains are outpacing the district average",
				Details: []string{
					"Third grade reading proficiency rose 6 points since September.",
					"Chronic absenteeism is concentrated in two homerooms.",
				},
			},
		},
		{
			ID: "s2", Name: "Roosevelt Middle School", DistrictID: "district-1",
			Principal: "James Okafor", PrincipalEmail: "j.okafor@northvalley.k12.us",
			StudentCount: 610, TeacherCount: 41, Performance: 74, Attendance: 91.4,
			Status: models.DistrictStatusWarning,
			Goals: &models.SchoolGoals{
				Reading:            models.GoalProgress{Current: 66, Target: 80},
				Math:               models.GoalProgress{Current: 58, Target: 75},
				Attendance:         models.GoalProgress{Current: 91.4, Target: 95},
				TutoringEngagement: models.GoalProgress{Current: 41, Target: 70},
			},
		},
		{
			ID: "s3", Name: "Washington High School", DistrictID: "district-1",
			Principal: "Angela Chen", PrincipalEmail: "a.chen@northvalley.k12.us",
			StudentCount: 1180, TeacherCount: 76, Performance: 81, Attendance: 92.8,
			Status: models.DistrictStatusGood,
		},
		{
			ID: "s4", Name: "Jefferson Academy", DistrictID: "district-2",
			Principal: "Robert Hale", PrincipalEmail: "r.hale@riverside.k12.us",
			StudentCount: 350, TeacherCount: 22, Performance: 62, Attendance: 86.1,
			Status: models.DistrictStatusAlert,
			AISummary: &models.AISummary{
				Headline: "Math proficiency needs immediate attention",
				Details: []string{
					"Algebra readiness dropped for the third consecutive month.",
					"Tutoring enrollment is below 30 percent of eligible students.",
				},
			},
		},
		{
			ID: "s5", Name: "Madison Elementary", DistrictID: "district-2",
			Principal: "Priya Natarajan", PrincipalEmail: "p.natarajan@riverside.k12.us",
			StudentCount: 390, TeacherCount: 25, Performance: 79, Attendance: 93.6,
			Status: models.DistrictStatusGood,
		},
	}
}

func teachers() []models.Teacher {
	return []models.Teacher{
		{
			ID: "t1", Name: "Jane Doe", Email: "j.doe@northvalley.k12.us", SchoolID: "s1",
			Role: "Grade 3 Lead", Rating: 4.8, Status: models.TeacherStatusActive,
			StudentFeedback: []models.StudentFeedback{
				{Author: "Parent of Grade 3 student", Comment: "Clear weekly updates and very approachable.", Rating: 5, Date: "2024-04-12"},
			},
			CareerTimeline: []models.CareerEvent{
				{Year: 2014, Title: "Joined Lincoln Elementary", Description: "Started as a Grade 2 teacher."},
				{Year: 2020, Title: "Grade 3 Lead", Description: "Leads the grade level literacy team."},
			},
		},
		{
			ID: "t2", Name: "Marcus Webb", Email: "m.webb@northvalley.k12.us", SchoolID: "s1",
			Role: "Math Specialist", Rating: 4.2, Status: models.TeacherStatusActive,
		},
		{
			ID: "t3", Name: "Sofia Alvarez", Email: "s.alvarez@northvalley.k12.us", SchoolID: "s2",
			Role: "Science Teacher", Rating: 3.1, Status: models.TeacherStatusFlagged,
			PerformanceIssues: []string{
				"Lab completion rates below department target",
				"Two missed parent conference windows",
			},
		},
		{
			ID: "t4", Name: "David Kim", Email: "d.kim@northvalley.k12.us", SchoolID: "s2",
			Role: "English Teacher", Rating: 4.5, Status: models.TeacherStatusActive,
		},
		{
			ID: "t5", Name: "Rachel Foster", Email: "r.foster@northvalley.k12.us", SchoolID: "s3",
			Role: "AP Calculus", Rating: 4.9, Status: models.TeacherStatusActive,
		},
		{
			ID: "t6", Name: "Thomas Grant", Email: "t.grant@riverside.k12.us", SchoolID: "s4",
			Role: "Algebra Teacher", Rating: 2.8, Status: models.TeacherStatusFlagged,
			PerformanceIssues: []string{"Unit assessment scores trending down"},
		},
		{
			ID: "t7", Name: "Linda Morales", Email: "l.morales@riverside.k12.us", SchoolID: "s5",
			Role: "Reading Interventionist", Rating: 4.6, Status: models.TeacherStatusActive,
		},
	}
}

func students() []models.Student {
	return []models.Student{
		{
			ID: "st1", Name: "Ethan Brooks", GuardianEmail: "brooks.family@mail.example", SchoolID: "s1",
			Grade: 3, GPA: 2.1, Attendance: 84.5, Status: models.StudentStatusAtRisk,
			RiskFactors:  []string{"Attendance below 90%", "Reading level two grades behind"},
			AreasOfFocus: []string{"Phonics fluency", "Morning routine"},
		},
		{
			ID: "st2", Name: "Olivia Park", GuardianEmail: "park.home@mail.example", SchoolID: "s1",
			Grade: 4, GPA: 3.8, Attendance: 98.1, Status: models.StudentStatusExcelling,
		},
		{
			ID: "st3", Name: "Noah Patel", GuardianEmail: "patel.guardian@mail.example", SchoolID: "s2",
			Grade: 7, GPA: 1.9, Attendance: 81.2, Status: models.StudentStatusAtRisk,
			RiskFactors:  []string{"Failing two core classes", "Frequent tardiness"},
			AreasOfFocus: []string{"Pre-algebra", "Homework completion"},
		},
		{
			ID: "st4", Name: "Mia Johnson", GuardianEmail: "johnson.family@mail.example", SchoolID: "s2",
			Grade: 8, GPA: 3.2, Attendance: 94.0, Status: models.StudentStatusOnTrack,
		},
		{
			ID: "st5", Name: "Liam Nguyen", GuardianEmail: "nguyen.parents@mail.example", SchoolID: "s3",
			Grade: 11, GPA: 3.9, Attendance: 97.3, Status: models.StudentStatusExcelling,
		},
		{
			ID: "st6", Name: "Ava Thompson", GuardianEmail: "thompson.home@mail.example", SchoolID: "s3",
			Grade: 10, GPA: 2.3, Attendance: 86.7, Status: models.StudentStatusAtRisk,
			RiskFactors: []string{"Credit deficiency in English"},
		},
		{
			ID: "st7", Name: "Lucas Martin", GuardianEmail: "martin.family@mail.example", SchoolID: "s4",
			Grade: 6, GPA: 1.7, Attendance: 79.4, Status: models.StudentStatusAtRisk,
			RiskFactors:  []string{"Chronic absenteeism", "Math below grade level"},
			AreasOfFocus: []string{"Number sense"},
		},
		{
			ID: "st8", Name: "Chloe Davis", GuardianEmail: "davis.parents@mail.example", SchoolID: "s4",
			Grade: 7, GPA: 2.9, Attendance: 90.2, Status: models.StudentStatusOnTrack,
		},
		{
			ID: "st9", Name: "Henry Wilson", GuardianEmail: "wilson.home@mail.example", SchoolID: "s5",
			Grade: 2, GPA: 3.4, Attendance: 95.5, Status: models.StudentStatusOnTrack,
		},
		{
			ID: "st10", Name: "Isabella Garcia", GuardianEmail: "garcia.family@mail.example", SchoolID: "s5",
			Grade: 5, GPA: 3.7, Attendance: 96.8, Status: models.StudentStatusExcelling,
		},
	}
}

func skills() []models.SubjectMastery {
	return []models.SubjectMastery{
		{Subject: "Reading Comprehension", Mastery: 78},
		{Subject: "Algebra", Mastery: 61},
		{Subject: "Geometry", Mastery: 66},
		{Subject: "Life Science", Mastery: 74},
		{Subject: "Writing", Mastery: 69},
		{Subject: "World History", Mastery: 81},
		{Subject: "Vocabulary", Mastery: 83},
		{Subject: "Fractions", Mastery: 58},
	}
}

func insights() []models.Insight {
	return []models.Insight{
		{
			ID: "ins-1", Title: "Reading momentum", Severity: models.InsightInfo,
			Description: "Lincoln Elementary reading scores improved for five straight months.",
			Entity:      models.EntityRef{Type: models.EntitySchool, ID: "s1", Name: "Lincoln Elementary"},
		},
		{
			ID: "ins-2", Title: "Math proficiency gap", Severity: models.InsightCritical,
			Description: "Jefferson Academy algebra mastery is 19 points below the district.",
			Entity:      models.EntityRef{Type: models.EntitySchool, ID: "s4", Name: "Jefferson Academy"},
		},
		{
			ID: "ins-3", Title: "Lab completion", Severity: models.InsightWarning,
			Description: "Science lab completion in Sofia Alvarez's sections is at 62%.",
			Entity:      models.EntityRef{Type: models.EntityTeacher, ID: "t3", Name: "Sofia Alvarez"},
		},
		{
			ID: "ins-4", Title: "Attendance dip", Severity: models.InsightWarning,
			Description: "Ethan Brooks missed six school days in the last month.",
			Entity:      models.EntityRef{Type: models.EntityStudent, ID: "st1", Name: "Ethan Brooks"},
		},
		{
			ID: "ins-5", Title: "District trend", Severity: models.InsightInfo,
			Description: "North Valley attendance is up 1.4 points year over year.",
			Entity:      models.EntityRef{Type: models.EntityDistrict, ID: "district-1", Name: "North Valley Unified"},
		},
	}
}

// snapshots ramps every school and student linearly towards its current
// metrics so the latest month equals the live values.
func snapshots(schools []models.School, students []models.Student) []models.HistoricalSnapshot {
	out := make([]models.HistoricalSnapshot, 0, len(Dates)*(len(schools)+len(students)))
	last := len(Dates) - 1
	for i, date := range Dates {
		back := float64(last - i)
		for j, s := range schools {
			drift := 0.6 + 0.2*float64(j%3)
			out = append(out, models.HistoricalSnapshot{
				EntityID: s.ID,
				Date:     date,
				Metrics: map[string]float64{
					"performance": roundTenth(s.Performance - drift*back),
					"attendance":  roundTenth(s.Attendance - 0.3*back),
				},
			})
		}
		for _, st := range students {
			out = append(out, models.HistoricalSnapshot{
				EntityID: st.ID,
				Date:     date,
				Metrics: map[string]float64{
					"gpa":        math.Max(0, roundTenth(st.GPA-0.04*back)),
					"attendance": roundTenth(st.Attendance - 0.2*back),
				},
			})
		}
	}
	return out
}

// History builds a student's performance history from the snapshots.
func History(studentID string, snaps []models.HistoricalSnapshot) []models.PerformancePoint {
	var out []models.PerformancePoint
	for _, snap := range snaps {
		if snap.EntityID != studentID {
			continue
		}
		out = append(out, models.PerformancePoint{
			Month:      snap.Date,
			GPA:        snap.Metrics["gpa"],
			Attendance: snap.Metrics["attendance"],
		})
	}
	return out
}

func goals() []models.Goal {
	deadline := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	return []models.Goal{
		{ID: "goal-1", Title: "District reading proficiency", Target: 85, Current: 78, Unit: "%", Deadline: deadline, Category: models.GoalAcademic},
		{ID: "goal-2", Title: "Average daily attendance", Target: 95, Current: 92.4, Unit: "%", Deadline: deadline, Category: models.GoalAttendance},
		{ID: "goal-3", Title: "Tutoring participation", Target: 1200, Current: 640, Unit: "students", Deadline: deadline, Category: models.GoalEngagement},
		{ID: "goal-4", Title: "Teacher observations completed", Target: 150, Current: 150, Unit: "observations", Deadline: deadline, Category: models.GoalOperations},
	}
}

func activity() []models.ActivityItem {
	ref := func(t models.EntityType, id, name string) *models.EntityRef {
		return &models.EntityRef{Type: t, ID: id, Name: name}
	}
	items := []models.ActivityItem{
		{Type: models.ActivityWin, Title: "Attendance goal reached", Description: "Lincoln Elementary hit 95% attendance this month.", Entity: ref(models.EntitySchool, "s1", "Lincoln Elementary")},
		{Type: models.ActivityAlert, Title: "Math scores declining", Description: "Jefferson Academy algebra results fell for the third month.", Entity: ref(models.EntitySchool, "s4", "Jefferson Academy")},
		{Type: models.ActivityInsight, Title: "Tutoring correlation", Description: "Students in tutoring gained 0.3 GPA on average."},
		{Type: models.ActivityAction, Title: "Observation scheduled", Description: "Classroom observation booked for Sofia Alvarez.", Entity: ref(models.EntityTeacher, "t3", "Sofia Alvarez"), Read: true},
		{Type: models.ActivityAlert, Title: "Student flagged", Description: "Lucas Martin was flagged for chronic absenteeism.", Entity: ref(models.EntityStudent, "st7", "Lucas Martin"), Read: true},
	}
	for i := range items {
		items[i].ID = fmt.Sprintf("act-%d", i+1)
		items[i].Timestamp = Epoch.Add(-time.Duration(i*3) * time.Hour)
	}
	return items
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
