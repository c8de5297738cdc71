package insights

import (
	"fmt"
	"strings"
)

// Synthesize turns the computed buckets into ordered classroom-management
// directives for the class dashboard section of the report. Each category is
// gated on its input bucket: an empty bucket suppresses the whole category
// instead of emitting a garbled line.
func Synthesize(ins ClassInsights) []string {
	var out []string

	out = append(out, "IMMEDIATE CLASSROOM SETUP (Implement Tomorrow):")
	out = append(out, fmt.Sprintf("   TOTAL CLASS SIZE: %d students requiring %d individual support stations",
		ins.TotalStudents, len(ins.IndividualAttention)))
	for _, grade := range ins.GradeOrder {
		students := ins.GradeGroups[grade]
		out = append(out, fmt.Sprintf("   %s: %d students (%s) - Seat together in rows 2-3",
			grade, len(students), strings.Join(students, ", ")))
	}

	if len(ins.PeerHelpers) > 0 && len(ins.NeedUrgentSupport) > 0 {
		out = append(out, "PEER TUTORING SYSTEM (Start This Week):")
		out = append(out, fmt.Sprintf("   TUTORS AVAILABLE: %s can help struggling classmates",
			strings.Join(ins.PeerHelpers, ", ")))
		out = append(out, fmt.Sprintf("   STUDENTS NEEDING HELP: %s require daily support",
			strings.Join(ins.NeedUrgentSupport, ", ")))
		for _, pair := range ins.PeerPairs() {
			out = append(out, fmt.Sprintf("   PAIR: %s (tutor) + %s (learner) - Meet Tuesdays & Thursdays 11:30-11:50 AM, back-left corner desk",
				pair[0], pair[1]))
		}
	}

	if len(ins.IndividualAttention) > 0 {
		out = append(out, "DAILY SCHEDULE OPTIMIZATION (Exact Times):")
		first := ins.IndividualAttention
		if len(first) > 3 {
			first = first[:3]
		}
		out = append(out, fmt.Sprintf("   10:15-10:30 AM: Individual support time for %s while others do independent work",
			strings.Join(first, ", ")))
		if len(ins.IndividualAttention) > 3 {
			out = append(out, fmt.Sprintf("   2:45-3:00 PM: Individual support time for %s while others clean classroom",
				strings.Join(ins.IndividualAttention[3:], ", ")))
		}
	}

	for _, subject := range ins.SubjectOrder {
		urgent := ins.HighSeverityStudents(subject)
		if len(urgent) == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("URGENT %s INTERVENTIONS:", strings.ToUpper(subject)))
		out = append(out, fmt.Sprintf("   STUDENTS NEEDING IMMEDIATE HELP: %s", strings.Join(urgent, ", ")))
		out = append(out, fmt.Sprintf("   ACTION: Dedicate first 15 minutes of %s class to small group instruction with these students", subject))
		out = append(out, "   LOCATION: Front corner of classroom, use visual aids and manipulatives")
	}

	if short := ins.AttentionSpans["Short"]; len(short) > 0 {
		out = append(out, "ATTENTION SPAN MANAGEMENT:")
		out = append(out, fmt.Sprintf("   SHORT ATTENTION (%s): Change activities every 8-10 minutes, use movement breaks",
			strings.Join(short, ", ")))
		out = append(out, "   STRATEGY: Ring bell every 8 minutes, have these students stand and stretch for 30 seconds")
	}

	out = append(out, "CLASSROOM LAYOUT (Rearrange This Week):")
	if len(ins.IndividualAttention) > 0 {
		front := ins.IndividualAttention
		if len(front) > 4 {
			front = front[:4]
		}
		out = append(out, fmt.Sprintf("   FRONT ROW: Individual attention students (%s)", strings.Join(front, ", ")))
	}
	out = append(out, "   MIDDLE ROWS: Grade-level groups seated side by side, one column per grade")
	out = append(out, "   BACK LEFT CORNER: Peer tutoring station with small desk and manipulation materials")
	out = append(out, "   BACK RIGHT CORNER: Independent work station for advanced students")

	out = append(out, "PROGRESS TRACKING SYSTEM (Start Monday):")
	monday := "all students"
	if len(ins.NeedUrgentSupport) > 0 {
		monday = strings.Join(ins.NeedUrgentSupport, ", ")
	}
	out = append(out, fmt.Sprintf("   MONDAY: Quick assessment - check weekend practice with %s", monday))
	wednesday := "advanced students"
	if len(ins.PeerHelpers) > 0 {
		wednesday = strings.Join(ins.PeerHelpers, ", ")
	}
	out = append(out, fmt.Sprintf("   WEDNESDAY: Peer tutor feedback - ask %s 'How is your buddy doing?'", wednesday))
	out = append(out, "   FRIDAY: Weekly goals check - use simple tick/cross marking for each student's target skills")

	out = append(out, "MATERIALS NEEDED (Zero Cost):")
	out = append(out, "   20 small stones for counting (collect from playground)")
	out = append(out, "   3 cloth pieces for manipulation activities (use old saris/clothes)")
	out = append(out, "   2 small containers for storing materials (use empty containers)")
	out = append(out, "   1 progress tracking sheet per student (draw grid on paper)")

	return out
}

// Recommendations produces the closing multi-grade teaching recommendations.
// Entries that name specific students are gated on those buckets being
// non-empty.
func Recommendations(ins ClassInsights) []string {
	var names []string
	for _, grade := range ins.GradeOrder {
		names = append(names, ins.GradeGroups[grade]...)
	}

	var out []string

	zone := "ZONE-BASED CLASSROOM SETUP (Implement This Week): Divide classroom into 4 zones: " +
		"(1) Front-left: Teacher instruction area with all grades, " +
		"(2) Front-right: Individual help station for struggling students, " +
		"(3) Back-left: Peer tutoring corner, " +
		"(4) Back-right: Independent work zone for advanced students. " +
		"Each zone needs clear visual boundaries using chalk lines on floor."
	out = append(out, zone)

	if len(ins.PeerPairs()) > 0 {
		out = append(out, "BUDDY SYSTEM IMPLEMENTATION (Start Tuesday): Pair each struggling student with a peer helper. "+
			"Meet every Tuesday 11:30-11:50 AM and Thursday 2:30-2:50 PM. Buddies sit together during these times only, "+
			"return to grade groups for regular lessons. Teacher checks each pair for 2 minutes during buddy time.")
	}

	out = append(out, "MULTI-LEVEL MATERIALS CREATION (Make This Weekend): Create ONE set of counting materials that serves all grades: "+
		"Use 30 bottle caps numbered 1-30. Younger grades use caps 1-10 for basic counting, middle grades use caps 1-20 for "+
		"addition/subtraction, the oldest grade uses all 30 for multiplication tables. Store in 3 labeled cloth bags: "+
		"'छोटे नंबर' (1-10), 'मध्यम नंबर' (11-20), 'बड़े नंबर' (21-30).")

	out = append(out, fmt.Sprintf("ROTATION SCHEDULE (Daily Implementation): 9:00-9:20 AM: All grades together for morning song/prayer. "+
		"9:20-9:40 AM: Grade-specific instruction (teacher moves between %d groups every 7 minutes). "+
		"9:40-10:00 AM: Mixed-grade collaborative project. 10:00-10:15 AM: Individual work time. "+
		"10:15-10:30 AM: Cleanup and reflection with buddy pairs.", len(ins.GradeOrder)))

	if len(names) > 0 {
		out = append(out, fmt.Sprintf("WEEKLY GOAL CONTRACTS (Start Monday): Give each student a simple card with 3 specific goals. "+
			"For example, %s: (1) Solve 2 word problems using objects, (2) Help one classmate with addition, "+
			"(3) Read problems aloud before solving. Students check off goals daily, teacher reviews every Friday "+
			"afternoon for 5 minutes per student.", names[0]))
	}

	out = append(out, "PARENT HOME ACTIVITIES (Send Note Wednesday): Create specific activity sheets for each grade level that parents "+
		"can do with ZERO additional cost: count household items while doing chores, use cooking ingredients for "+
		"addition/subtraction practice, calculate change while shopping.")

	out = append(out, "OBSERVATION-BASED ASSESSMENT (Daily 5-Minute Protocol): Use simple tally system on one sheet of paper: each student "+
		"gets a tick (doing well), arrow (needs practice), or cross (struggling) for that day's focus skill. Check 3 students per "+
		"day in detail, rotate so each student gets detailed observation twice per week. Friday: quick review of the week's "+
		"tallies to plan next week.")

	out = append(out, "CROSS-GRADE LEARNING MATERIALS (Create Using Old Books): Make story cards from old textbook pictures: one picture "+
		"serves vocabulary practice for the youngest grade, sentence writing for the middle grade, and story problems for the "+
		"oldest. Need 10 different picture cards total.")

	if len(names) >= 3 {
		out = append(out, fmt.Sprintf("STUDENT LEADERSHIP SYSTEM (Assign Monday): Rotate weekly responsibilities: %s = Material Manager "+
			"(distributes/collects supplies), %s = Time Keeper (uses hand clap to signal transitions), %s = Help Coordinator "+
			"(identifies who needs assistance). Change roles weekly so everyone gets leadership practice.",
			names[0], names[1], names[2]))
	}

	if len(names) > 0 {
		out = append(out, fmt.Sprintf("FOCUSED PROGRESS TRACKING (Target 2 Skills Per Student): Instead of tracking everything, focus on just "+
			"2 critical skills per student for 2 weeks. For example, if %s struggles with reading comprehension and word problems, "+
			"track only these two. Use a simple notebook page: student name, skill 1 daily rating (1-5), skill 2 daily rating (1-5), "+
			"weekly summary.", names[0]))
	}

	return out
}
