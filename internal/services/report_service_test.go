package services

import (
	"testing"

	"github.com/careconnect/careconnect-api/internal/models"
	"github.com/stretchr/testify/require"
)

// reportFixture builds two caregivers with accepted appointments (rates 10.00
// and 12.00, 4 and 3 hours) and one caregiver who never got accepted.
func reportFixture(t *testing.T, env serviceTestEnv) (member, arman, dana, idle *models.User) {
	t.Helper()

	member = env.registerMember(t, "member@example.com", "+7 701 000 0001")
	arman = env.registerCaregiver(t, "arman@example.com", "+7 701 000 0002", 10.00)
	dana = env.registerCaregiver(t, "dana@example.com", "+7 701 000 0003", 12.00)
	idle = env.registerCaregiver(t, "idle@example.com", "+7 701 000 0004", 50.00)

	for _, booking := range []struct {
		caregiver *models.User
		hours     float64
	}{
		{arman, 4},
		{dana, 3},
	} {
		appt, err := env.apptService.Request(memberIdentity(member), RequestInput{
			CaregiverID:     booking.caregiver.ID,
			AppointmentDate: futureDate(7),
			AppointmentTime: "10:00",
			WorkHours:       booking.hours,
		})
		require.NoError(t, err)
		_, err = env.apptService.Respond(caregiverIdentity(booking.caregiver), appt.ID, "accept")
		require.NoError(t, err)
	}

	// A pending appointment for the idle caregiver must not count anywhere.
	_, err := env.apptService.Request(memberIdentity(member), RequestInput{
		CaregiverID:     idle.ID,
		AppointmentDate: futureDate(7),
		AppointmentTime: "12:00",
		WorkHours:       8,
	})
	require.NoError(t, err)

	return member, arman, dana, idle
}

func TestReportService_TotalAcceptedHours(t *testing.T) {
	env := setupServiceTestEnv(t)

	// No appointments at all yields zero, not an error.
	total, err := env.repService.TotalAcceptedHours()
	require.NoError(t, err)
	require.Zero(t, total)

	reportFixture(t, env)

	total, err = env.repService.TotalAcceptedHours()
	require.NoError(t, err)
	require.InDelta(t, 7.0, total, 0.001)
}

func TestReportService_AverageAcceptedRate(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, ok, err := env.repService.AverageAcceptedRate()
	require.NoError(t, err)
	require.False(t, ok)

	reportFixture(t, env)

	// Averaged per distinct caregiver: (10.00 + 12.00) / 2.
	avg, ok, err := env.repService.AverageAcceptedRate()
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 11.0, avg, 0.001)
}

func TestReportService_AboveAverageEarners(t *testing.T) {
	env := setupServiceTestEnv(t)
	_, _, dana, _ := reportFixture(t, env)

	earners, err := env.repService.AboveAverageEarners()
	require.NoError(t, err)
	require.Len(t, earners, 1)
	require.Equal(t, dana.ID, earners[0].CaregiverID)
	require.InDelta(t, 12.0, earners[0].HourlyRate, 0.001)
}

func TestReportService_CaregiverTotalCosts(t *testing.T) {
	env := setupServiceTestEnv(t)
	_, arman, dana, idle := reportFixture(t, env)

	costs, err := env.repService.CaregiverTotalCosts()
	require.NoError(t, err)

	byCaregiver := make(map[uint64]float64, len(costs))
	for _, row := range costs {
		byCaregiver[row.CaregiverID] = row.TotalCost
	}
	require.InDelta(t, 40.0, byCaregiver[arman.ID], 0.001)
	require.InDelta(t, 36.0, byCaregiver[dana.ID], 0.001)
	require.NotContains(t, byCaregiver, idle.ID)
}

func TestReportService_ApplicantCountsScenario(t *testing.T) {
	env := setupServiceTestEnv(t)
	member := env.registerMember(t, "amina@example.com", "+7 701 000 0001")
	arman := env.registerCaregiver(t, "arman@example.com", "+7 701 000 0002", 10.00)

	job, err := env.jobService.PostJob(PostJobInput{
		MemberID:               member.ID,
		RequiredCaregivingType: string(models.CaregivingTypeBabysitter),
	})
	require.NoError(t, err)

	_, err = env.jobService.Apply(arman.ID, job.ID)
	require.NoError(t, err)
	_, err = env.jobService.Apply(arman.ID, job.ID)
	require.ErrorIs(t, err, ErrAlreadyApplied)

	counts, err := env.repService.ApplicantCounts()
	require.NoError(t, err)
	require.Len(t, counts, 1)
	require.EqualValues(t, 1, counts[0].ApplicantCount)
}

func TestReportService_JobApplicantsView(t *testing.T) {
	env := setupServiceTestEnv(t)
	member := env.registerMember(t, "amina@example.com", "+7 701 000 0001")
	arman := env.registerCaregiver(t, "arman@example.com", "+7 701 000 0002", 10.00)

	job, err := env.jobService.PostJob(PostJobInput{
		MemberID:               member.ID,
		RequiredCaregivingType: string(models.CaregivingTypeBabysitter),
	})
	require.NoError(t, err)
	_, err = env.jobService.Apply(arman.ID, job.ID)
	require.NoError(t, err)

	rows, err := env.repService.JobApplicants()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, job.ID, rows[0].JobID)
	require.Equal(t, arman.ID, rows[0].CaregiverID)
	require.Equal(t, "Caregiver", rows[0].ApplicantGivenName)
	require.Equal(t, "Member", rows[0].PosterGivenName)
	require.InDelta(t, 10.0, rows[0].HourlyRate, 0.001)
}

func TestReportService_ApplyCommission(t *testing.T) {
	env := setupServiceTestEnv(t)
	low := env.registerCaregiver(t, "low@example.com", "+7 701 000 0001", 8.00)
	edge := env.registerCaregiver(t, "edge@example.com", "+7 701 000 0002", 9.70)
	high := env.registerCaregiver(t, "high@example.com", "+7 701 000 0003", 10.00)

	adjusted, err := env.repService.ApplyCommission()
	require.NoError(t, err)
	require.EqualValues(t, 3, adjusted)

	rates := map[uint64]float64{}
	var caregivers []models.Caregiver
	require.NoError(t, env.db.Find(&caregivers).Error)
	for _, cg := range caregivers {
		rates[cg.UserID] = cg.HourlyRate
	}

	// Below 10 gains the flat 0.30, at or above 10 gains 10 percent. A rate
	// pushed to 10.00 by the flat raise must not also get the percentage.
	require.InDelta(t, 8.30, rates[low.ID], 0.001)
	require.InDelta(t, 10.00, rates[edge.ID], 0.001)
	require.InDelta(t, 11.00, rates[high.ID], 0.001)
}
