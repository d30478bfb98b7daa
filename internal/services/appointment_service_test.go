package services

import (
	"testing"

	"github.com/careconnect/careconnect-api/internal/models"
	"github.com/careconnect/careconnect-api/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAppointmentService_Request(t *testing.T) {
	env := setupServiceTestEnv(t)
	member := env.registerMember(t, "member@example.com", "+7 701 000 0001")
	caregiver := env.registerCaregiver(t, "cg@example.com", "+7 701 000 0002", 10.00)

	appt, err := env.apptService.Request(memberIdentity(member), RequestInput{
		CaregiverID:     caregiver.ID,
		AppointmentDate: futureDate(7),
		AppointmentTime: "14:30",
		WorkHours:       3.5,
	})
	require.NoError(t, err)
	require.Equal(t, models.AppointmentStatusPending, appt.Status)
	require.Equal(t, member.ID, appt.MemberID)
}

func TestAppointmentService_RequestRejections(t *testing.T) {
	env := setupServiceTestEnv(t)
	member := env.registerMember(t, "member@example.com", "+7 701 000 0001")
	caregiver := env.registerCaregiver(t, "cg@example.com", "+7 701 000 0002", 10.00)

	// Only members may book.
	_, err := env.apptService.Request(caregiverIdentity(caregiver), RequestInput{
		CaregiverID:     caregiver.ID,
		AppointmentDate: futureDate(7),
		AppointmentTime: "14:30",
		WorkHours:       3,
	})
	require.ErrorIs(t, err, ErrNotMember)

	var verr *ValidationError

	// Today and past dates are rejected.
	_, err = env.apptService.Request(memberIdentity(member), RequestInput{
		CaregiverID:     caregiver.ID,
		AppointmentDate: futureDate(0),
		AppointmentTime: "14:30",
		WorkHours:       3,
	})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "appointment_date", verr.Field)

	_, err = env.apptService.Request(memberIdentity(member), RequestInput{
		CaregiverID:     caregiver.ID,
		AppointmentDate: futureDate(7),
		AppointmentTime: "25:99",
		WorkHours:       3,
	})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "appointment_time", verr.Field)

	for _, hours := range []float64{0, -1, 24.5} {
		_, err = env.apptService.Request(memberIdentity(member), RequestInput{
			CaregiverID:     caregiver.ID,
			AppointmentDate: futureDate(7),
			AppointmentTime: "14:30",
			WorkHours:       hours,
		})
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "work_hours", verr.Field)
	}

	_, err = env.apptService.Request(memberIdentity(member), RequestInput{
		CaregiverID:     99999,
		AppointmentDate: futureDate(7),
		AppointmentTime: "14:30",
		WorkHours:       3,
	})
	require.ErrorIs(t, err, ErrCaregiverNotFound)

	var count int64
	env.db.Model(&models.Appointment{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestAppointmentService_Respond(t *testing.T) {
	env := setupServiceTestEnv(t)
	member := env.registerMember(t, "member@example.com", "+7 701 000 0001")
	caregiver := env.registerCaregiver(t, "cg@example.com", "+7 701 000 0002", 10.00)
	intruder := env.registerCaregiver(t, "intruder@example.com", "+7 701 000 0003", 12.00)

	appt, err := env.apptService.Request(memberIdentity(member), RequestInput{
		CaregiverID:     caregiver.ID,
		AppointmentDate: futureDate(7),
		AppointmentTime: "09:00",
		WorkHours:       4,
	})
	require.NoError(t, err)

	// Only the caregiver on the appointment may respond.
	_, err = env.apptService.Respond(caregiverIdentity(intruder), appt.ID, "accept")
	require.ErrorIs(t, err, ErrNotAppointmentCaregiver)

	_, err = env.apptService.Respond(memberIdentity(member), appt.ID, "accept")
	require.ErrorIs(t, err, ErrNotAppointmentCaregiver)

	_, err = env.apptService.Respond(caregiverIdentity(caregiver), appt.ID, "cancel")
	require.ErrorIs(t, err, ErrUnknownAction)

	accepted, err := env.apptService.Respond(caregiverIdentity(caregiver), appt.ID, "accept")
	require.NoError(t, err)
	require.Equal(t, models.AppointmentStatusAccepted, accepted.Status)

	// Accepted is terminal, in both directions.
	_, err = env.apptService.Respond(caregiverIdentity(caregiver), appt.ID, "accept")
	require.ErrorIs(t, err, ErrAppointmentResolved)
	_, err = env.apptService.Respond(caregiverIdentity(caregiver), appt.ID, "decline")
	require.ErrorIs(t, err, ErrAppointmentResolved)

	_, err = env.apptService.Respond(caregiverIdentity(caregiver), 99999, "accept")
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAppointmentService_DeclineIsTerminal(t *testing.T) {
	env := setupServiceTestEnv(t)
	member := env.registerMember(t, "member@example.com", "+7 701 000 0001")
	caregiver := env.registerCaregiver(t, "cg@example.com", "+7 701 000 0002", 10.00)

	appt, err := env.apptService.Request(memberIdentity(member), RequestInput{
		CaregiverID:     caregiver.ID,
		AppointmentDate: futureDate(7),
		AppointmentTime: "09:00",
		WorkHours:       4,
	})
	require.NoError(t, err)

	declined, err := env.apptService.Respond(caregiverIdentity(caregiver), appt.ID, "decline")
	require.NoError(t, err)
	require.Equal(t, models.AppointmentStatusDeclined, declined.Status)

	_, err = env.apptService.Respond(caregiverIdentity(caregiver), appt.ID, "accept")
	require.ErrorIs(t, err, ErrAppointmentResolved)
}

func TestAppointmentService_ListFilters(t *testing.T) {
	env := setupServiceTestEnv(t)
	member := env.registerMember(t, "member@example.com", "+7 701 000 0001")
	caregiver := env.registerCaregiver(t, "cg@example.com", "+7 701 000 0002", 10.00)

	morning, err := env.apptService.Request(memberIdentity(member), RequestInput{
		CaregiverID:     caregiver.ID,
		AppointmentDate: futureDate(7),
		AppointmentTime: "08:00",
		WorkHours:       2,
	})
	require.NoError(t, err)
	evening, err := env.apptService.Request(memberIdentity(member), RequestInput{
		CaregiverID:     caregiver.ID,
		AppointmentDate: futureDate(8),
		AppointmentTime: "19:00",
		WorkHours:       5,
	})
	require.NoError(t, err)

	from := "18:00"
	appointments, err := env.apptService.List(repository.AppointmentFilter{TimeFrom: &from})
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	require.Equal(t, evening.ID, appointments[0].ID)

	maxHours := 3.0
	appointments, err = env.apptService.List(repository.AppointmentFilter{HoursTo: &maxHours})
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	require.Equal(t, morning.ID, appointments[0].ID)

	mine, err := env.apptService.ListForMember(member.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	pending := models.AppointmentStatusPending
	appointments, err = env.apptService.List(repository.AppointmentFilter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, appointments, 2)
}
