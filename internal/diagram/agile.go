package diagram

const agileProcess = `@startuml
left to right direction
skinparam dpi 150
rectangle "Product Backlog" as Backlog
rectangle "Sprint Planning" as Planning
rectangle "Sprint Backlog" as Sprint_Backlog
rectangle "Sprint" as Sprint
rectangle "Daily Scrum" as Daily_Scrum
rectangle "Increment" as Increment
rectangle "Sprint Review" as Review
rectangle "Sprint Retrospective" as Retrospective

Backlog --> Planning
Planning --> Sprint_Backlog
Sprint_Backlog --> Sprint
Sprint --> Daily_Scrum
Daily_Scrum --> Sprint
Sprint --> Increment
Increment --> Review
Review --> Retrospective
Retrospective --> Backlog
@enduml
`

// AgileProcess returns the fixed Scrum workflow diagram
func AgileProcess() string {
	return agileProcess
}
