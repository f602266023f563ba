package employee

import (
	"context"
	"fmt"
	"strings"

	"hrms/internal/domain/errs"
	"hrms/internal/platform/db"
	"hrms/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(q querier.Querier) *Store {
	return &Store{DB: q}
}

const employeeColumns = `id, employee_code, first_name, last_name, email, phone, location, department, job_role,
           status, contract_type, contract_end_date, date_of_joining,
           leave_annual, leave_sick, leave_personal, leave_maternity, leave_paternity,
           last_profile_update, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (Employee, error) {
	var emp Employee
	var status, contract string
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone, &emp.Location,
		&emp.Department, &emp.JobRole, &status, &contract, &emp.ContractEndDate, &emp.DateOfJoining,
		&emp.LeaveBalance.Annual, &emp.LeaveBalance.Sick, &emp.LeaveBalance.Personal,
		&emp.LeaveBalance.Maternity, &emp.LeaveBalance.Paternity,
		&emp.LastProfileUpdate, &emp.CreatedAt, &emp.UpdatedAt,
	)
	emp.Status = Status(status)
	emp.ContractType = ContractType(contract)
	return emp, err
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employees (`+employeeColumns+`)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
  `,
		emp.ID, emp.EmployeeCode, emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Location,
		emp.Department, emp.JobRole, string(emp.Status), string(emp.ContractType), emp.ContractEndDate, emp.DateOfJoining,
		emp.LeaveBalance.Annual, emp.LeaveBalance.Sick, emp.LeaveBalance.Personal,
		emp.LeaveBalance.Maternity, emp.LeaveBalance.Paternity,
		emp.LastProfileUpdate, emp.CreatedAt, emp.UpdatedAt,
	)
	return db.Classify(err)
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	if !db.ValidID(id) {
		return Employee{}, errs.ErrNotFound
	}
	emp, err := scanEmployee(s.DB.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		return Employee{}, db.Classify(err)
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context, filter Filter) ([]Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE 1=1`
	var args []any
	if filter.Department != "" {
		args = append(args, filter.Department)
		query += fmt.Sprintf(" AND department = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR employee_code ILIKE $%d)", n, n, n, n)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) error {
	if !db.ValidID(emp.ID) {
		return errs.ErrNotFound
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $2, last_name = $3, email = $4, phone = $5, location = $6, department = $7, job_role = $8,
        status = $9, contract_type = $10, contract_end_date = $11,
        leave_annual = $12, leave_sick = $13, leave_personal = $14, leave_maternity = $15, leave_paternity = $16,
        last_profile_update = $17, updated_at = $18
    WHERE id = $1
  `,
		emp.ID, emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Location, emp.Department, emp.JobRole,
		string(emp.Status), string(emp.ContractType), emp.ContractEndDate,
		emp.LeaveBalance.Annual, emp.LeaveBalance.Sick, emp.LeaveBalance.Personal,
		emp.LeaveBalance.Maternity, emp.LeaveBalance.Paternity,
		emp.LastProfileUpdate, emp.UpdatedAt,
	)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	if !db.ValidID(id) {
		return errs.ErrNotFound
	}
	tag, err := s.DB.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
