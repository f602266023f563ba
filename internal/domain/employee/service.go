package employee

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/errs"
)

type Service struct {
	Store StoreAPI
	Users *auth.Service
	Audit audit.Recorder
	Now   func() time.Time
}

func NewService(store StoreAPI, users *auth.Service, recorder audit.Recorder) *Service {
	return &Service{Store: store, Users: users, Audit: recorder, Now: time.Now}
}

// Create onboards an employee. When a password is supplied a login is
// created alongside the record; failure to create it rolls the record back.
func (s *Service) Create(ctx context.Context, user auth.UserContext, in CreateInput) (Employee, error) {
	if err := auth.RequireAnyOf(user, auth.CapManage); err != nil {
		return Employee{}, err
	}
	emp, err := s.build(in)
	if err != nil {
		return Employee{}, err
	}
	if in.Password != "" {
		available, err := s.Users.EmailAvailable(ctx, emp.Email)
		if err != nil {
			return Employee{}, err
		}
		if !available {
			return Employee{}, fmt.Errorf("login for %s: %w", emp.Email, errs.ErrDuplicateRecord)
		}
	}
	if err := s.Store.CreateEmployee(ctx, emp); err != nil {
		return Employee{}, err
	}
	if in.Password != "" {
		role, _ := auth.ParseRole(in.UserRole)
		if _, err := s.Users.Register(ctx, emp.Email, in.Password, role, emp.ID); err != nil {
			if delErr := s.Store.DeleteEmployee(ctx, emp.ID); delErr != nil {
				slog.Warn("employee rollback failed", "employeeId", emp.ID, "err", delErr)
			}
			return Employee{}, err
		}
	}
	s.Audit.Record(ctx, audit.Entry{
		Action:  audit.ActionEmployeeAdded,
		Actor:   user.Email,
		UserID:  user.UserID,
		Target:  "Employee: " + emp.FullName(),
		Details: audit.Detail(map[string]any{"employeeId": emp.ID, "department": emp.Department}),
	})
	return emp, nil
}

// Signup registers a self-service Staff account together with its employee
// record and returns a session for it.
func (s *Service) Signup(ctx context.Context, in SignupInput) (auth.Session, error) {
	if in.Password == "" {
		return auth.Session{}, errs.Invalid("password", "is required")
	}
	emp, err := s.build(CreateInput{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Department: in.Department,
		JobRole:    in.JobRole,
	})
	if err != nil {
		return auth.Session{}, err
	}
	available, err := s.Users.EmailAvailable(ctx, emp.Email)
	if err != nil {
		return auth.Session{}, err
	}
	if !available {
		return auth.Session{}, fmt.Errorf("login for %s: %w", emp.Email, errs.ErrDuplicateRecord)
	}
	if err := s.Store.CreateEmployee(ctx, emp); err != nil {
		return auth.Session{}, err
	}
	login, err := s.Users.Register(ctx, emp.Email, in.Password, auth.RoleStaff, emp.ID)
	if err != nil {
		if delErr := s.Store.DeleteEmployee(ctx, emp.ID); delErr != nil {
			slog.Warn("employee rollback failed", "employeeId", emp.ID, "err", delErr)
		}
		return auth.Session{}, err
	}
	session, err := s.Users.IssueSession(login)
	if err != nil {
		return auth.Session{}, err
	}
	s.Audit.Record(ctx, audit.Entry{
		Action: audit.ActionSignup,
		Actor:  login.Email,
		UserID: login.ID,
		Target: "Employee: " + emp.FullName(),
	})
	return session, nil
}

func (s *Service) List(ctx context.Context, user auth.UserContext, filter Filter) ([]Employee, error) {
	if err := auth.RequireAnyOf(user, auth.CapAuthenticated); err != nil {
		return nil, err
	}
	out, err := s.Store.ListEmployees(ctx, filter)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Employee{}
	}
	for i := range out {
		FilterFields(&out[i], user)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, user auth.UserContext, id string) (Employee, error) {
	if err := auth.RequireAnyOf(user, auth.CapAuthenticated); err != nil {
		return Employee{}, err
	}
	emp, err := s.Store.GetEmployee(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	FilterFields(&emp, user)
	return emp, nil
}

func (s *Service) Update(ctx context.Context, user auth.UserContext, id string, in UpdateInput) (Employee, error) {
	if err := auth.RequireAnyOf(user, auth.CapManage); err != nil {
		return Employee{}, err
	}
	emp, err := s.Store.GetEmployee(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	changed, err := applyUpdate(&emp, in)
	if err != nil {
		return Employee{}, err
	}
	emp.UpdatedAt = s.Now()
	if err := s.Store.UpdateEmployee(ctx, emp); err != nil {
		return Employee{}, err
	}
	s.Audit.Record(ctx, audit.Entry{
		Action:  audit.ActionEmployeeUpdated,
		Actor:   user.Email,
		UserID:  user.UserID,
		Target:  "Employee: " + emp.FullName(),
		Details: audit.Detail(map[string]any{"employeeId": emp.ID, "fields": changed}),
	})
	return emp, nil
}

func (s *Service) Delete(ctx context.Context, user auth.UserContext, id string) error {
	if err := auth.RequireRole(user, auth.RoleAdmin); err != nil {
		return err
	}
	emp, err := s.Store.GetEmployee(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Users.Store.DeleteUsersByEmployee(ctx, id); err != nil {
		return err
	}
	if err := s.Store.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	s.Audit.Record(ctx, audit.Entry{
		Action:  audit.ActionEmployeeDeleted,
		Actor:   user.Email,
		UserID:  user.UserID,
		Target:  "Employee: " + emp.FullName(),
		Details: audit.Detail(map[string]any{"employeeId": emp.ID, "email": emp.Email}),
	})
	return nil
}

// UpdateProfile lets an employee change their own contact details.
func (s *Service) UpdateProfile(ctx context.Context, user auth.UserContext, in ProfileInput) (Employee, error) {
	if err := auth.RequireAnyOf(user, auth.CapAuthenticated); err != nil {
		return Employee{}, err
	}
	if user.EmployeeID == "" {
		return Employee{}, errs.ErrForbidden
	}
	emp, err := s.Store.GetEmployee(ctx, user.EmployeeID)
	if err != nil {
		return Employee{}, err
	}
	now := s.Now()
	if in.Phone != nil {
		emp.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Location != nil {
		emp.Location = strings.TrimSpace(*in.Location)
	}
	emp.LastProfileUpdate = &now
	emp.UpdatedAt = now
	if err := s.Store.UpdateEmployee(ctx, emp); err != nil {
		return Employee{}, err
	}
	s.Audit.Record(ctx, audit.Entry{
		Action: audit.ActionProfileUpdated,
		Actor:  user.Email,
		UserID: user.UserID,
		Target: "Employee: " + emp.FullName(),
	})
	return emp, nil
}

// LeaveBalance is visible to the employee themself and to HR/Admin.
func (s *Service) LeaveBalance(ctx context.Context, user auth.UserContext, id string) (BalanceView, error) {
	if err := auth.RequireAnyOf(user, auth.CapAuthenticated); err != nil {
		return BalanceView{}, err
	}
	if user.EmployeeID != id && !user.Can(auth.CapManage) {
		return BalanceView{}, errs.ErrForbidden
	}
	emp, err := s.Store.GetEmployee(ctx, id)
	if err != nil {
		return BalanceView{}, err
	}
	return BalanceView{
		EmployeeID: emp.ID,
		Name:       emp.FullName(),
		Balance:    emp.LeaveBalance,
		Total:      emp.LeaveBalance.Total(),
	}, nil
}

func (s *Service) build(in CreateInput) (Employee, error) {
	now := s.Now()
	emp := Employee{
		ID:              uuid.NewString(),
		EmployeeCode:    strings.TrimSpace(in.EmployeeCode),
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:           strings.TrimSpace(in.Phone),
		Location:        strings.TrimSpace(in.Location),
		Department:      strings.TrimSpace(in.Department),
		JobRole:         strings.TrimSpace(in.JobRole),
		Status:          in.Status,
		ContractType:    in.ContractType,
		ContractEndDate: in.ContractEndDate,
		DateOfJoining:   now,
		LeaveBalance:    DefaultLeaveBalance(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if emp.EmployeeCode == "" {
		emp.EmployeeCode = fmt.Sprintf("EMP-%d", now.UnixMilli())
	}
	if emp.Status == "" {
		emp.Status = StatusActive
	}
	if emp.ContractType == "" {
		emp.ContractType = ContractFullTime
	}
	if in.DateOfJoining != nil {
		emp.DateOfJoining = *in.DateOfJoining
	}
	if in.LeaveBalance != nil {
		emp.LeaveBalance = *in.LeaveBalance
	}
	if err := validate(emp); err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func applyUpdate(emp *Employee, in UpdateInput) ([]string, error) {
	var changed []string
	setString := func(field string, dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
			changed = append(changed, field)
		}
	}
	setString("firstName", &emp.FirstName, in.FirstName)
	setString("lastName", &emp.LastName, in.LastName)
	setString("phone", &emp.Phone, in.Phone)
	setString("location", &emp.Location, in.Location)
	setString("department", &emp.Department, in.Department)
	setString("role", &emp.JobRole, in.JobRole)
	if in.Email != nil {
		emp.Email = strings.ToLower(strings.TrimSpace(*in.Email))
		changed = append(changed, "email")
	}
	if in.Status != nil {
		emp.Status = *in.Status
		changed = append(changed, "status")
	}
	if in.ContractType != nil {
		emp.ContractType = *in.ContractType
		changed = append(changed, "contractType")
	}
	if in.ContractEndDate != nil {
		emp.ContractEndDate = in.ContractEndDate
		changed = append(changed, "contractEndDate")
	}
	if in.LeaveBalance != nil {
		emp.LeaveBalance = *in.LeaveBalance
		changed = append(changed, "leaveBalance")
	}
	return changed, validate(*emp)
}

func validate(emp Employee) error {
	switch {
	case emp.FirstName == "":
		return errs.Invalid("firstName", "is required")
	case emp.LastName == "":
		return errs.Invalid("lastName", "is required")
	case emp.Email == "":
		return errs.Invalid("email", "is required")
	case emp.Department == "":
		return errs.Invalid("department", "is required")
	case emp.JobRole == "":
		return errs.Invalid("role", "is required")
	}
	if _, err := mail.ParseAddress(emp.Email); err != nil {
		return errs.Invalid("email", "must be a valid address")
	}
	if !slices.Contains(Statuses, emp.Status) {
		return errs.Invalid("status", "must be one of Active, Inactive, On Leave, Terminated")
	}
	if !slices.Contains(ContractTypes, emp.ContractType) {
		return errs.Invalid("contractType", "must be one of Full-time, Part-time, Contract, Internship")
	}
	if !emp.LeaveBalance.Valid() {
		return errs.Invalid("leaveBalance", "must not be negative")
	}
	return nil
}
