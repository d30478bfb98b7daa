package services

import (
	"fmt"

	"github.com/careconnect/careconnect-api/internal/repository"
)

// ReportService exposes the aggregation and projection queries.
type ReportService struct {
	reportRepo repository.ReportRepository
	jobRepo    repository.JobRepository
	cgRepo     repository.CaregiverRepository
}

// NewReportService creates a new ReportService.
func NewReportService(reportRepo repository.ReportRepository, jobRepo repository.JobRepository, cgRepo repository.CaregiverRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		jobRepo:    jobRepo,
		cgRepo:     cgRepo,
	}
}

// ApplicantCounts reports applicants per job, jobs without applicants included.
func (s *ReportService) ApplicantCounts() ([]repository.JobApplicantCount, error) {
	counts, err := s.jobRepo.ApplicantCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to count applicants: %w", err)
	}
	return counts, nil
}

// TotalAcceptedHours sums work hours over accepted appointments, 0 if none.
func (s *ReportService) TotalAcceptedHours() (float64, error) {
	total, err := s.reportRepo.TotalAcceptedHours()
	if err != nil {
		return 0, fmt.Errorf("failed to sum accepted hours: %w", err)
	}
	return total, nil
}

// AverageAcceptedRate averages the hourly rate over distinct caregivers with
// accepted appointments. The second return is false when no caregiver
// qualifies.
func (s *ReportService) AverageAcceptedRate() (float64, bool, error) {
	avg, err := s.reportRepo.AverageAcceptedRate()
	if err != nil {
		return 0, false, fmt.Errorf("failed to average accepted rates: %w", err)
	}
	if avg == nil {
		return 0, false, nil
	}
	return *avg, true, nil
}

// AboveAverageEarners lists caregivers whose rate strictly exceeds the
// average accepted rate.
func (s *ReportService) AboveAverageEarners() ([]repository.CaregiverEarnings, error) {
	earners, err := s.reportRepo.AboveAverageEarners()
	if err != nil {
		return nil, fmt.Errorf("failed to list above-average earners: %w", err)
	}
	return earners, nil
}

// CaregiverTotalCosts reports the total cost per caregiver over accepted
// appointments.
func (s *ReportService) CaregiverTotalCosts() ([]repository.CaregiverCost, error) {
	costs, err := s.reportRepo.CaregiverTotalCosts()
	if err != nil {
		return nil, fmt.Errorf("failed to total caregiver costs: %w", err)
	}
	return costs, nil
}

// JobApplicants returns the job applicants projection.
func (s *ReportService) JobApplicants() ([]repository.JobApplicantRow, error) {
	rows, err := s.reportRepo.JobApplicants()
	if err != nil {
		return nil, fmt.Errorf("failed to read job applicants view: %w", err)
	}
	return rows, nil
}

// ApplyCommission adjusts all caregiver rates and returns the affected count.
func (s *ReportService) ApplyCommission() (int64, error) {
	adjusted, err := s.cgRepo.ApplyCommission()
	if err != nil {
		return 0, fmt.Errorf("failed to apply commission: %w", err)
	}
	return adjusted, nil
}
