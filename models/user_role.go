package models

import "strings"

type UserRole string

const (
	DirectorGeneralRole       UserRole = "Director-General"
	SystemAdministratorRole   UserRole = "System Administrator"
	DeputyDirectorGeneralRole UserRole = "Deputy Director-General"
	DirectorRole              UserRole = "Director"
	DeputyDirectorRole        UserRole = "Deputy Director"
	PrincipalRole             UserRole = "Principal"
	VicePrincipalRole         UserRole = "Vice Principal"
	HeadOfDepartmentRole      UserRole = "Head of Department"
	SupervisorRole            UserRole = "Supervisor"
	StaffOfficerRole          UserRole = "Staff Officer"
)

var managerRoles = map[UserRole]bool{
	DirectorGeneralRole:       true,
	SystemAdministratorRole:   true,
	DeputyDirectorGeneralRole: true,
	DirectorRole:              true,
	DeputyDirectorRole:        true,
	PrincipalRole:             true,
	VicePrincipalRole:         true,
	HeadOfDepartmentRole:      true,
	SupervisorRole:            true,
}

// IsManagerRole единая проверка права руководителя (согласование, завершение, просмотр команды).
// Руководители подразделений и отделов ("... Division Head", "... Unit Head") также считаются руководителями.
func (r UserRole) IsManagerRole() bool {
	if managerRoles[r] {
		return true
	}
	return strings.HasSuffix(string(r), " Head")
}

func (r UserRole) IsAdmin() bool {
	return r == DirectorGeneralRole || r == SystemAdministratorRole
}

const SystemUser = "Система"
