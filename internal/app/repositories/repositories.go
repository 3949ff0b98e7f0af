package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	StudentRepository    *StudentRepository
	DepartmentRepository *DepartmentRepository
	SlotRepository       *SlotRepository
	CourseRepository     *CourseRepository
	TermRepository       *TermRepository
	OfferingRepository   *OfferingRepository
	ProposalRepository   *ProposalRepository
	EnrollmentRepository *EnrollmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		StudentRepository:    NewStudentRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		SlotRepository:       NewSlotRepository(db),
		CourseRepository:     NewCourseRepository(db),
		TermRepository:       NewTermRepository(db),
		OfferingRepository:   NewOfferingRepository(db),
		ProposalRepository:   NewProposalRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
	}
}
